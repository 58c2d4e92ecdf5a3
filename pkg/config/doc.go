// Package config provides environment-backed configuration for simple-admin.
//
// Structs carry cleanenv `env`/`env-default` tags so mains can populate them
// with cleanenv.ReadEnv; GetEnvOrDefault covers ad-hoc lookups outside the
// struct path.
package config
