// Package iorefdata loads reference data from the embedded refdata.yaml or
// from a user supplied file.
package iorefdata

import (
	_ "embed"
	"log/slog"
	"os"

	"github.com/gnames/tfingest/pkg/refdata"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed refdata.yaml
var refdataYAML []byte

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads reference data. An empty path loads the embedded data.
func Load(path string) (*refdata.Data, error) {
	bs := refdataYAML
	if path != "" {
		var err error
		bs, err = os.ReadFile(path)
		if err != nil {
			return nil, ReadError(path, err)
		}
	}
	if path == "" {
		path = "embedded refdata.yaml"
	}

	res, err := Decode(bs, path)
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded reference data",
		"source", path,
		"places", len(res.Places),
		"allocations", len(res.Allocations),
	)
	return res, nil
}

// Decode parses and validates reference data. The source names the data
// in error messages.
func Decode(bs []byte, source string) (*refdata.Data, error) {
	var res refdata.Data
	if err := yaml.Unmarshal(bs, &res); err != nil {
		return nil, DecodeError(source, err)
	}

	if err := validate.Struct(res); err != nil {
		return nil, InvalidError(source, err)
	}

	for _, name := range refdata.RequiredEnums {
		if len(res.Enums[name]) == 0 {
			return nil, MissingEnumError(source, name)
		}
	}

	if err := res.Build(); err != nil {
		return nil, InvalidError(source, err)
	}
	return &res, nil
}
