// Package utils exposes reusable helpers consumed by multiple commands.
//
// ConfigurationLoader layers embedded defaults, configuration files, and
// GITBATCH_* environment variables through Viper; LoggerFactory builds the zap
// loggers; FlushingWriter and CommandContextAccessor support command output and
// per-invocation state.
package utils
