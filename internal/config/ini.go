package config

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/ini.v1"
)

// iniCodec reads and writes the bench's config.ini / configstat.ini files.
// Each [section] becomes a nested map; keys outside any section sit at the
// top level. Values stay strings and are converted when unmarshalled.
type iniCodec struct{}

func (iniCodec) Decode(b []byte, v map[string]any) error {
	f, err := ini.LoadSources(ini.LoadOptions{Insensitive: true}, b)
	if err != nil {
		return err
	}

	for _, sec := range f.Sections() {
		target := v
		if !strings.EqualFold(sec.Name(), ini.DefaultSection) {
			m := make(map[string]any, len(sec.Keys()))
			v[sec.Name()] = m
			target = m
		}
		for _, k := range sec.Keys() {
			target[k.Name()] = k.String()
		}
	}
	return nil
}

func (iniCodec) Encode(v map[string]any) ([]byte, error) {
	f := ini.Empty()

	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, name := range keys {
		m, ok := v[name].(map[string]any)
		if !ok {
			if _, err := f.Section("").NewKey(name, iniValue(v[name])); err != nil {
				return nil, err
			}
			continue
		}
		sec, err := f.NewSection(name)
		if err != nil {
			return nil, err
		}
		for k, val := range m {
			if _, err := sec.NewKey(k, iniValue(val)); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func iniValue(v any) string {
	switch x := v.(type) {
	case []string:
		return strings.Join(x, ",")
	case []any:
		parts := make([]string, len(x))
		for i, p := range x {
			parts[i] = fmt.Sprint(p)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}

var codecs = func() *viper.DefaultCodecRegistry {
	r := viper.NewCodecRegistry()
	if err := r.RegisterCodec("ini", iniCodec{}); err != nil {
		panic(err)
	}
	return r
}()
