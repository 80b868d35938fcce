package main

import (
	"context"
	_ "embed"
	"log"
	"os"

	"weatherapp/apis/openweathermap"
	"weatherapp/cli"
	"weatherapp/config"
	"weatherapp/manager"
)

//go:embed config.yaml
var configRaw []byte

func main() {
	ctx := context.Background()

	cfg, err := config.Load(configRaw)
	if err != nil {
		log.Fatalf("config: %s\n", err)
	}

	weatherApp := manager.New(openweathermap.New(cfg.OpenWeatherMap))

	cmd, err := cli.New(weatherApp, cfg.DefaultUnit())
	if err != nil {
		log.Fatalf("new cli: %s\n", err)
	}

	if err = cmd.ExecuteContext(ctx); err != nil {
		log.Printf("exec: %s\n", err)
		os.Exit(1)
	}
}
