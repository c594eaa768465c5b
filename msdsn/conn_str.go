package msdsn

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode"
)

type Log uint64

const (
	LogErrors      Log = 1
	LogMessages    Log = 2
	LogRows        Log = 4
	LogSQL         Log = 8
	LogParams      Log = 16
	LogTransaction Log = 32
	LogDebug       Log = 64
	LogRetries     Log = 128
)

var logNames = []struct {
	flag Log
	name string
}{
	{LogErrors, "errors"},
	{LogMessages, "messages"},
	{LogRows, "rows"},
	{LogSQL, "sql"},
	{LogParams, "params"},
	{LogTransaction, "transaction"},
	{LogDebug, "debug"},
	{LogRetries, "retries"},
}

func (l Log) String() string {
	var names []string
	for _, n := range logNames {
		if l&n.flag != 0 {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

const (
	defaultPacketSize = 4096
	minPacketSize     = 512
	maxPacketSize     = 32767
)

// Config holds the settings that shape how values are decoded.
type Config struct {
	LogFlags Log

	// UseUTC builds temporal values in UTC. When false they are built in
	// time.Local from the same wire fields.
	UseUTC bool

	// LowerCaseGuids formats uniqueidentifier values in lower case.
	LowerCaseGuids bool

	// PacketSize is the TDS packet size used when reading packet framed input.
	PacketSize uint16

	// Parameters contains every key seen while parsing, lower cased.
	Parameters map[string]string
}

// Default returns the configuration used when no connection string is given.
func Default() Config {
	return Config{
		UseUTC:     true,
		PacketSize: defaultPacketSize,
		Parameters: map[string]string{},
	}
}

// Parse reads a configuration from an ADO style "key=value;..." string, an
// ODBC style "odbc:key={value};..." string or a "sqlserver://" URL.
func Parse(dsn string) (Config, error) {
	var params map[string]string
	var err error
	switch {
	case strings.HasPrefix(dsn, "sqlserver://"):
		params, err = splitConnectionStringURL(dsn)
	case strings.HasPrefix(dsn, "odbc:"):
		params, err = splitConnectionStringOdbc(dsn[len("odbc:"):])
	default:
		params = splitConnectionString(dsn)
	}
	if err != nil {
		return Config{}, err
	}
	return configFromParams(params)
}

func configFromParams(params map[string]string) (Config, error) {
	p := Default()
	p.Parameters = params

	if strlog, ok := params["log"]; ok {
		flags, err := strconv.ParseUint(strlog, 10, 64)
		if err != nil {
			return p, fmt.Errorf("invalid log parameter '%s': %s", strlog, err.Error())
		}
		p.LogFlags = Log(flags)
	}

	if s, ok := params["useutc"]; ok {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return p, fmt.Errorf("invalid useutc parameter '%s': %s", s, err.Error())
		}
		p.UseUTC = v
	}

	if s, ok := params["lowercaseguids"]; ok {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return p, fmt.Errorf("invalid lowercaseguids parameter '%s': %s", s, err.Error())
		}
		p.LowerCaseGuids = v
	}

	if psize, ok := params["packet size"]; ok {
		// packet size is clamped into the range the server accepts
		// rather than rejected, matching server behaviour
		size, err := strconv.ParseUint(psize, 0, 16)
		if err != nil {
			return p, fmt.Errorf("invalid packet size '%v': %v", psize, err.Error())
		}
		switch {
		case size < minPacketSize:
			p.PacketSize = minPacketSize
		case size > maxPacketSize:
			p.PacketSize = maxPacketSize
		default:
			p.PacketSize = uint16(size)
		}
	}

	return p, nil
}

func splitConnectionString(dsn string) map[string]string {
	res := map[string]string{}
	parts := strings.Split(dsn, ";")
	for _, part := range parts {
		if len(part) == 0 {
			continue
		}
		lst := strings.SplitN(part, "=", 2)
		name := strings.TrimSpace(strings.ToLower(lst[0]))
		if len(name) == 0 {
			continue
		}
		var value string
		if len(lst) > 1 {
			value = strings.TrimSpace(lst[1])
		}
		res[name] = value
	}
	return res
}

// Splits a URL of the form sqlserver://host?key=value&key=value
func splitConnectionStringURL(dsn string) (map[string]string, error) {
	res := map[string]string{}

	u, err := url.Parse(dsn)
	if err != nil {
		return res, err
	}
	if u.Scheme != "sqlserver" {
		return res, fmt.Errorf("scheme %s is not recognized", u.Scheme)
	}

	for k, v := range u.Query() {
		if len(v) > 1 {
			return res, fmt.Errorf("key %s provided more than once", k)
		}
		res[strings.ToLower(k)] = v[0]
	}
	if u.Host != "" {
		res["server"] = u.Host
	}
	return res, nil
}

// Splits an ODBC connection string where values may be wrapped in braces and
// a closing brace inside braces is escaped by doubling it.
func splitConnectionStringOdbc(dsn string) (map[string]string, error) {
	res := map[string]string{}

	type parserState int
	const (
		parserStateBeforeKey parserState = iota
		parserStateKey
		parserStateBeginValue
		parserStateBareValue
		parserStateBracedValue
		parserStateBracedValueClosingBrace
		parserStateEndValue
	)

	var state = parserStateBeforeKey

	var key string
	var value string

	for i, c := range dsn {
		switch state {
		case parserStateBeforeKey:
			switch {
			case c == '=':
				return res, fmt.Errorf("unexpected character = at index %d. expected key", i)
			case unicode.IsSpace(c) || c == ';':
			default:
				state = parserStateKey
				key = string(c)
			}

		case parserStateKey:
			switch c {
			case '=':
				key = normalizeOdbcKey(key)
				state = parserStateBeginValue
			case ';':
				res[normalizeOdbcKey(key)] = ""
				state = parserStateBeforeKey
			default:
				key += string(c)
			}

		case parserStateBeginValue:
			switch {
			case c == '{':
				state = parserStateBracedValue
				value = ""
			case c == ';':
				res[key] = ""
				state = parserStateBeforeKey
			case unicode.IsSpace(c):
			default:
				state = parserStateBareValue
				value = string(c)
			}

		case parserStateBareValue:
			if c == ';' {
				res[key] = strings.TrimRightFunc(value, unicode.IsSpace)
				state = parserStateBeforeKey
			} else {
				value += string(c)
			}

		case parserStateBracedValue:
			if c == '}' {
				state = parserStateBracedValueClosingBrace
			} else {
				value += string(c)
			}

		case parserStateBracedValueClosingBrace:
			if c == '}' {
				value += string(c)
				state = parserStateBracedValue
			} else {
				res[key] = value
				state = parserStateEndValue
				if c == ';' {
					state = parserStateBeforeKey
				} else if !unicode.IsSpace(c) {
					return res, fmt.Errorf("unexpected character %c at index %d. expected ; or spaces", c, i)
				}
			}

		case parserStateEndValue:
			switch {
			case c == ';':
				state = parserStateBeforeKey
			case unicode.IsSpace(c):
			default:
				return res, fmt.Errorf("unexpected character %c at index %d. expected ; or spaces", c, i)
			}
		}
	}

	switch state {
	case parserStateBeforeKey, parserStateEndValue:
	case parserStateKey:
		res[normalizeOdbcKey(key)] = ""
	case parserStateBeginValue:
		res[key] = ""
	case parserStateBareValue:
		res[key] = strings.TrimRightFunc(value, unicode.IsSpace)
	case parserStateBracedValue:
		return res, fmt.Errorf("unexpected end of braced value at index %d", len(dsn))
	case parserStateBracedValueClosingBrace:
		res[key] = value
	}

	return res, nil
}

func normalizeOdbcKey(s string) string {
	return strings.ToLower(strings.TrimRightFunc(s, unicode.IsSpace))
}
