// Package config loads the hyperparameters and service settings that
// cmd/crftrain and cmd/crftagd need but the numerical core does not. It
// follows the familiar viper.New + SetConfigFile + ReadInConfig +
// Unmarshal pattern, with env var overrides bound so a deployed crftagd
// can be retuned without editing its YAML.
package config
