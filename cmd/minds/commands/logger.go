package commands

import (
	"io"
	"sort"

	"github.com/hashicorp/go-hclog"
)

// hclogAdapter exposes an hclog.Logger as a minds.Logger.
type hclogAdapter struct {
	logger hclog.Logger
}

func newLogger(w io.Writer, level hclog.Level) *hclogAdapter {
	return &hclogAdapter{
		logger: hclog.New(&hclog.LoggerOptions{
			Name:   "minds",
			Output: w,
			Level:  level,
		}),
	}
}

func (a *hclogAdapter) Debug(msg string, fields map[string]interface{}) {
	a.logger.Debug(msg, flattenFields(fields)...)
}

func (a *hclogAdapter) Info(msg string, fields map[string]interface{}) {
	a.logger.Info(msg, flattenFields(fields)...)
}

func (a *hclogAdapter) Warn(msg string, fields map[string]interface{}) {
	a.logger.Warn(msg, flattenFields(fields)...)
}

func (a *hclogAdapter) Error(msg string, fields map[string]interface{}) {
	a.logger.Error(msg, flattenFields(fields)...)
}

// flattenFields turns a field map into hclog's key/value pairs, sorted by key.
func flattenFields(fields map[string]interface{}) []interface{} {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	args := make([]interface{}, 0, len(fields)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}

	return args
}
