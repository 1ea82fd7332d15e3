package config

import (
	"os"
	"path"

	"github.com/mitchellh/go-homedir"
)

const (
	DefaultHomeDir = "~/.nastconv"
	CachePath      = "cache"
)

func ExpandHomePath(path string) string {
	res, err := homedir.Expand(path)
	if err != nil {
		panic(err)
	}
	return res
}

func ExpandCachePath(homePath string) string {
	return path.Join(homePath, CachePath)
}

func InitCacheDir(homePath string) error {
	p := ExpandCachePath(homePath)
	return os.MkdirAll(p, 0700)
}
