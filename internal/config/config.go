package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	API struct {
		URL string `yaml:"url"`
	} `yaml:"api"`

	AWS struct {
		Bucket string `yaml:"bucket"`
		Folder string `yaml:"folder"`
		Region string `yaml:"region"`
	} `yaml:"aws"`

	Output struct {
		File string `yaml:"file"`
	} `yaml:"output"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
