package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// UpdateEarningsDates rewrites earnings_date values for the given tickers in
// the config file at path. The file is round-tripped through a yaml.Node so
// key order and comments survive the write-back.
func UpdateEarningsDates(path string, updates map[string]string) error {
	if len(updates) == 0 {
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	if len(doc.Content) == 0 {
		return fmt.Errorf("parsing config: empty document")
	}

	watchlist := findMappingValue(doc.Content[0], "watchlist")
	if watchlist == nil || watchlist.Kind != yaml.SequenceNode {
		return fmt.Errorf("config has no watchlist section")
	}

	for _, item := range watchlist.Content {
		if item.Kind != yaml.MappingNode {
			continue
		}
		tickerNode := findMappingValue(item, "ticker")
		if tickerNode == nil {
			continue
		}
		newDate, ok := updates[tickerNode.Value]
		if !ok {
			continue
		}
		setMappingValue(item, "earnings_date", newDate)
	}

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// findMappingValue returns the value node for key in a mapping node.
func findMappingValue(mapping *yaml.Node, key string) *yaml.Node {
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// setMappingValue updates or appends a string value for key in a mapping node.
func setMappingValue(mapping *yaml.Node, key, value string) {
	if node := findMappingValue(mapping, key); node != nil {
		node.SetString(value)
		return
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value},
	)
}
