// Copyright 2019 the orbs-load-tester authors
// This file is part of the orbs-load-tester library in the Orbs project.
//
// This source code is licensed under the MIT license found in the LICENSE file in the root directory of this source tree.
// The above notice should be included in all copies or substantial portions of the software.

package config

import (
	"encoding/json"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type ArrayFlags []string

func (i *ArrayFlags) String() string {
	return strings.Join(*i, ",")
}

func (i *ArrayFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}

func (i *ArrayFlags) Type() string {
	return "stringArray"
}

func modifyFromJson(cfg mutableLoadTesterConfig, source string) error {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(source), &data); err != nil {
		return err
	}

	return populateConfig(cfg, data)
}

func modifyFromYaml(cfg mutableLoadTesterConfig, source string) error {
	var data map[string]interface{}
	if err := yaml.Unmarshal([]byte(source), &data); err != nil {
		return err
	}

	return populateConfig(cfg, data)
}

func convertKeyName(key string) string {
	return strings.ToUpper(strings.Replace(key, "-", "_", -1))
}

func populateConfig(cfg mutableLoadTesterConfig, data map[string]interface{}) error {
	for key, value := range data {
		switch value := value.(type) {
		case bool:
			cfg.SetBool(convertKeyName(key), value)
		case float64:
			if value < 0 {
				return errors.Errorf("could not decode value for config key %s: negative number %v", key, value)
			}
			cfg.SetUint32(convertKeyName(key), uint32(value))
		case int:
			if value < 0 {
				return errors.Errorf("could not decode value for config key %s: negative number %v", key, value)
			}
			cfg.SetUint32(convertKeyName(key), uint32(value))
		case string:
			if duration, decodeError := time.ParseDuration(value); decodeError != nil {
				cfg.SetString(convertKeyName(key), value)
			} else {
				cfg.SetDuration(convertKeyName(key), duration)
			}
		default:
			return errors.Errorf("could not decode value for config key %s: unsupported type %T", key, value)
		}
	}

	return nil
}

// GetConfigFromFiles overlays the files, in order, on the production defaults.
// Files ending in .yaml or .yml are read as YAML, anything else as JSON.
func GetConfigFromFiles(configFiles ArrayFlags) (mutableLoadTesterConfig, error) {
	cfg := ForProduction()

	for _, configFile := range configFiles {
		if _, err := os.Stat(configFile); os.IsNotExist(err) {
			return nil, errors.Errorf("could not open config file: %s", err)
		}

		contents, err := ioutil.ReadFile(configFile)
		if err != nil {
			return nil, err
		}

		modify := modifyFromJson
		if ext := filepath.Ext(configFile); ext == ".yaml" || ext == ".yml" {
			modify = modifyFromYaml
		}

		if err := modify(cfg, string(contents)); err != nil {
			return nil, errors.Wrapf(err, "failed parsing config file %s", configFile)
		}
	}

	return cfg, nil
}
