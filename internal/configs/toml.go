package configs

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// SaveTOML saves a struct to a TOML file.
func SaveTOML(filePath string, data interface{}) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0700); err != nil {
		return err
	}

	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(data)
}

// LoadTOML loads a TOML file into a struct. Keys unknown to data are rejected.
func LoadTOML(filePath string, data interface{}) error {
	md, err := toml.DecodeFile(filePath, data)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return &UnknownKeysError{Path: filePath, Keys: undecoded}
	}
	return nil
}

// UnknownKeysError lists the keys of a TOML file that no field accepted.
type UnknownKeysError struct {
	Path string
	Keys []toml.Key
}

func (e *UnknownKeysError) Error() string {
	msg := "configs: unknown keys in " + e.Path + ":"
	for _, k := range e.Keys {
		msg += " " + k.String()
	}
	return msg
}
