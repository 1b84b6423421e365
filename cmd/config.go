package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/kitchen"
)

// Config carries every externally supplied setting. Values are read once
// at startup; components capture what they need at construction.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// StationsJSON defines the kitchen station chain, e.g.
	// [{"name":"bar","categories":["BEBIDAS"],"capacity":8},
	//  {"name":"overflow","capacity":16,"overflow":true}]
	StationsJSON string

	MenuTTL       time.Duration
	NotifyTimeout time.Duration

	// WebhookURL, when set, subscribes a webhook notifier.
	WebhookURL string

	// AmqpURL and AmqpExchange, when set, subscribe an AMQP publisher.
	AmqpURL      string
	AmqpExchange string
}

// DSN builds the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

type stationConfig struct {
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
	Capacity   int      `json:"capacity"`
	Overflow   bool     `json:"overflow"`
}

// ParseStations builds the station chain from StationsJSON. The station
// flagged "overflow" catches items no chain station can take; without the
// flag the last station doubles as overflow.
func ParseStations(stationsJSON string) ([]*kitchen.Station, *kitchen.Station, error) {
	var configs []stationConfig
	if err := json.Unmarshal([]byte(stationsJSON), &configs); err != nil {
		return nil, nil, fmt.Errorf("invalid stations config: %w", err)
	}
	if len(configs) == 0 {
		return nil, nil, fmt.Errorf("stations config is empty")
	}

	stations := make([]*kitchen.Station, 0, len(configs))
	var overflow *kitchen.Station
	for _, config := range configs {
		station, err := kitchen.NewStation(config.Name, config.Categories, config.Capacity)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid station %q: %w", config.Name, err)
		}
		stations = append(stations, station)
		if config.Overflow {
			if overflow != nil {
				return nil, nil, fmt.Errorf("more than one overflow station configured")
			}
			overflow = station
		}
	}

	if overflow == nil {
		overflow = stations[len(stations)-1]
	}
	return stations, overflow, nil
}
