// cmd/sales-cli/fixtures.go
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"sales-workers/internal/models"

	"gopkg.in/yaml.v3"
)

// CatalogFixture is a shop catalog stored as YAML.
type CatalogFixture struct {
	ShopID   string           `yaml:"shopId"`
	Plan     models.Plan      `yaml:"plan"`
	Products []models.Product `yaml:"products"`
}

// Script is a scripted conversation. Catalog is a fixture path relative to
// the script; Products inline a catalog instead.
type Script struct {
	Name     string           `yaml:"name"`
	Catalog  string           `yaml:"catalog"`
	Plan     models.Plan      `yaml:"plan"`
	Products []models.Product `yaml:"products"`
	Turns    []ScriptTurn     `yaml:"turns"`
}

type ScriptTurn struct {
	Text   string       `yaml:"text"`
	Expect *Expectation `yaml:"expect"`
}

// Expectation checks a turn result; empty fields are not checked.
type Expectation struct {
	Intent         models.Intent          `yaml:"intent"`
	Action         models.SalesAction     `yaml:"action"`
	AiReason       models.AiTriggerReason `yaml:"aiReason"`
	MinRecommended *int                   `yaml:"minRecommended"`
	MaxRecommended *int                   `yaml:"maxRecommended"`
	MaxPrice       *float64               `yaml:"maxPrice"`
	ReplyContains  string                 `yaml:"replyContains"`
}

func loadCatalog(path string) (*CatalogFixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fixture CatalogFixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	fixture.Products = models.SanitizeCatalog(fixture.Products)
	if fixture.Plan == "" {
		fixture.Plan = models.PlanPro
	}
	return &fixture, nil
}

func loadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse script %s: %w", path, err)
	}
	if len(script.Turns) == 0 {
		return nil, fmt.Errorf("script %s has no turns", path)
	}

	if script.Catalog != "" {
		catalogPath := script.Catalog
		if !filepath.IsAbs(catalogPath) {
			catalogPath = filepath.Join(filepath.Dir(path), catalogPath)
		}
		fixture, err := loadCatalog(catalogPath)
		if err != nil {
			return nil, err
		}
		script.Products = append(fixture.Products, script.Products...)
		if script.Plan == "" {
			script.Plan = fixture.Plan
		}
	}
	script.Products = models.SanitizeCatalog(script.Products)
	if script.Plan == "" {
		script.Plan = models.PlanPro
	}
	return &script, nil
}
