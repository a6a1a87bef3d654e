package cmd

import (
	"github.com/spf13/pflag"

	"github.com/orest-d/liquer-go/util"
)

func addStoreRootFlag(fs *pflag.FlagSet, dir *string) {
	fs.StringVarP(dir, "store-root", "s", "", "root directory of a file-backed store; empty uses an in-memory store")
}

func addConfigFileFlag(fs *pflag.FlagSet, file *string) {
	fs.StringVarP(file, "config-file", "c", "", "set path of configuration file")
}

func addCacheCapacityFlag(fs *pflag.FlagSet, capacity *int) {
	fs.IntVar(capacity, "cache-capacity", 0, "maximum number of entries in the result cache (0 disables caching)")
}

func addLogLevelFlag(fs *pflag.FlagSet, level *string) {
	fs.StringVar(level, "log-level", "", "one of debug, info, warn, error")
}

func addLogFormatFlag(fs *pflag.FlagSet, format *string) {
	fs.StringVar(format, "log-format", "", "one of json, text")
}

func addOutputFormat(fs *pflag.FlagSet, outputFormat *util.EnumFlag) {
	fs.VarP(outputFormat, "format", "f", "set output format")
}

func addQueryStdinFlag(fs *pflag.FlagSet, stdin *bool) {
	fs.BoolVarP(stdin, "stdin", "", false, "read query from stdin")
}

func addLongDocFlag(fs *pflag.FlagSet, long *bool) {
	fs.BoolVar(long, "long", false, "show the full command description instead of the one-line summary")
}
