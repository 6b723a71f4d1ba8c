package main

import (
	"fmt"

	"github.com/Veraticus/housefly/internal/config"
	"github.com/Veraticus/housefly/internal/scoring"
)

func loadClient() (*config.Config, *scoring.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, scoring.NewClient(cfg.APIURL, scoring.WithTimeout(cfg.Timeout)), nil
}
