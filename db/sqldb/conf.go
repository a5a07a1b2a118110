package sqldb

type Conf struct {
	Type string `json:"type"` // mysql, pgsql, sqlite
	Host string `json:"host"`
	Port int    `json:"port"`
	User string `json:"user"`
	PW   string `json:"pw"`
	DB   string `json:"db"`  // database name. file path for sqlite
	TZ   string `json:"tz"`  // Connection Timezone
	DSN  string `json:"dsn"` // To Overwrite Default DSN

	// Pool tuning. zero = impl default
	MaxConns int `json:"max_conns"`
	MinConns int `json:"min_conns"`
}

// PoolSize returns MaxConns, or def when unset
func (c *Conf) PoolSize(def int) int {
	if c.MaxConns > 0 {
		return c.MaxConns
	}
	return def
}

// IdleSize returns MinConns, or def when unset
func (c *Conf) IdleSize(def int) int {
	if c.MinConns > 0 {
		return c.MinConns
	}
	return def
}
