package kvdb

import "fmt"

// ClientFactory constructs a Client from Conf. Registered per Conf.Type.
type ClientFactory func(conf *Conf) (Client, error)

var registry = map[string]ClientFactory{}

func RegisterFactory(kvType string, factory ClientFactory) {
	registry[kvType] = factory
}

func New(kvType string, conf *Conf) (Client, error) {
	factory, ok := registry[kvType]
	if !ok {
		return nil, fmt.Errorf("unsupported kv database type: %s", kvType)
	}
	return factory(conf)
}
