package config

import "os"

func IsDebug() bool {
	return os.Getenv("DOCCHAT_DEBUG") == "1"
}
