package sqldb

import (
	"fmt"
	"strconv"
	"strings"
)

var PlaceholderPrefixForDBType = map[string]byte{
	"mysql":  '?',
	"pgsql":  '$',
	"sqlite": 0, // NOTE: sqlite supports all of them
}

// ReplaceStaticPlaceholders numbers each `?` with prefix. `??` is left for ExpandDynamicPlaceholders.
func ReplaceStaticPlaceholders(sql string, prefix byte) string {
	if prefix == '?' || prefix == 0 {
		return sql
	}
	var builder strings.Builder
	builder.Grow(len(sql) + 8)
	cnt := 1
	i := 0
	for i < len(sql) {
		if sql[i] == '?' {
			// Do Not Touch Dynamic Placeholders '??'
			if i+1 < len(sql) && sql[i+1] == '?' {
				builder.WriteByte('?')
				builder.WriteByte('?')
				i += 2
				continue
			}
			builder.WriteByte(prefix)
			builder.WriteString(strconv.Itoa(cnt))
			cnt++
		} else {
			builder.WriteByte(sql[i])
		}
		i++
	}
	return builder.String()
}

// ExpandDynamicPlaceholders replaces the n-th `??` with counts[n] placeholders.
// start is the first ordinal for numbered dialects.
func ExpandDynamicPlaceholders(sql string, prefix byte, counts []int, start int) (string, error) {
	const symbol = "??"
	var b strings.Builder
	b.Grow(len(sql) + 16*len(counts))

	numbered := prefix != '?' && prefix != 0
	i := 0
	countIndex := 0
	ord := start

	for {
		j := strings.Index(sql[i:], symbol)
		if j == -1 {
			b.WriteString(sql[i:])
			break
		}

		b.WriteString(sql[i : i+j])
		i += j + len(symbol)

		if countIndex >= len(counts) {
			return "", fmt.Errorf("ExpandDynamicPlaceholders: not enough counts for %q", symbol)
		}

		n := counts[countIndex]
		countIndex++

		for k := 0; k < n; k++ {
			if k > 0 {
				b.WriteString(", ")
			}
			if numbered {
				b.WriteByte(prefix)
				b.WriteString(strconv.Itoa(ord))
				ord++
			} else {
				b.WriteByte('?')
			}
		}
	}

	if countIndex < len(counts) {
		return "", fmt.Errorf("ExpandDynamicPlaceholders: too many counts for %q", symbol)
	}

	return b.String(), nil
}
