// Copyright 2025 Semasia Systems
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


// Package config loads and saves application configuration from YAML.
//
// Configuration resolves in order: ./config.yaml in the working
// directory, then ~/.config/passage/config.yaml. If neither exists,
// defaults are written to the user path and returned. All fields have
// working defaults, so a partial file only needs the values it
// overrides. API keys are never stored in the file; the embedder
// section names an environment variable instead.
package config
