// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/varsnap/pkg/errors"
	"github.com/NVIDIA/varsnap/pkg/session"
	"github.com/NVIDIA/varsnap/pkg/value"
)

// varSpec declares one tracked variable. Kind and Length are optional:
// when present the first observed value must match them.
type varSpec struct {
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind,omitempty"`
	Length int    `yaml:"length,omitempty"`
}

// runConfig is the YAML document accepted by the run command's --config
// flag.
type runConfig struct {
	Vars []varSpec `yaml:"vars"`
}

func loadRunConfig(path string) (*runConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("reading config file %s", path), err)
	}
	cfg := &runConfig{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("parsing config file %s", path), err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *runConfig) validate() error {
	for i, v := range c.Vars {
		if strings.TrimSpace(v.Name) == "" {
			return errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("vars[%d]: name is required", i))
		}
		if v.Kind == "" {
			if v.Length != 0 {
				return errors.New(errors.ErrCodeInvalidRequest,
					fmt.Sprintf("vars[%d] (%s): length requires a kind", i, v.Name))
			}
			continue
		}
		k, ok := value.ParseKind(v.Kind)
		if !ok {
			return errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("vars[%d] (%s): unknown kind %q", i, v.Name, v.Kind))
		}
		if k.IsArray() && v.Length < 1 {
			return errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("vars[%d] (%s): array kind %s requires a positive length", i, v.Name, k))
		}
		if !k.IsArray() && v.Length != 0 {
			return errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("vars[%d] (%s): scalar kind %s does not take a length", i, v.Name, k))
		}
	}
	return nil
}

// apply registers every declared variable with the session.
func (c *runConfig) apply(st *session.Session) {
	for _, v := range c.Vars {
		if v.Kind == "" {
			st.Track(v.Name)
			continue
		}
		k, _ := value.ParseKind(v.Kind)
		st.TrackDeclared(v.Name, k, v.Length)
	}
}
