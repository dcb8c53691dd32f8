package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/inkwell-api/internal/config"
	"github.com/inkwell-api/internal/mocks"
	"github.com/inkwell-api/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
categories:
  - name: Engineering
    description: Building software
  - name: Prompts
  - name: engineering
  - name: ""
tags:
  - name: go
  - name: llm
  - name: Go
`

func newSeedServices() *service.Services {
	cfg := &config.Config{Auth: config.AuthConfig{JWTSecret: "s", TokenTTL: time.Hour, BcryptCost: 4}}
	return service.NewServices(mocks.NewRepositories().Interfaces(), cfg, zerolog.Nop())
}

func TestLoadSeed(t *testing.T) {
	seed, err := loadSeed(strings.NewReader(seedYAML))
	require.NoError(t, err)
	assert.Len(t, seed.Categories, 4)
	assert.Equal(t, "Building software", seed.Categories[0].Description)
	assert.Len(t, seed.Tags, 3)
}

func TestLoadSeed_Empty(t *testing.T) {
	seed, err := loadSeed(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, seed.Categories)
}

func TestLoadSeed_UnknownField(t *testing.T) {
	_, err := loadSeed(strings.NewReader("articles:\n  - title: x\n"))
	assert.Error(t, err)
}

func TestApplySeed(t *testing.T) {
	services := newSeedServices()
	seed, err := loadSeed(strings.NewReader(seedYAML))
	require.NoError(t, err)

	result, err := applySeed(context.Background(), services, seed, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, &seedResult{CategoriesCreated: 2, CategoriesSkipped: 2, TagsCreated: 2, TagsSkipped: 1}, result)

	categories, err := services.Category.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}

func TestApplySeed_Rerun(t *testing.T) {
	services := newSeedServices()
	seed, err := loadSeed(strings.NewReader(seedYAML))
	require.NoError(t, err)

	_, err = applySeed(context.Background(), services, seed, zerolog.Nop())
	require.NoError(t, err)

	result, err := applySeed(context.Background(), services, seed, zerolog.Nop())
	require.NoError(t, err)
	assert.Zero(t, result.CategoriesCreated)
	assert.Zero(t, result.TagsCreated)
	assert.Equal(t, 4, result.CategoriesSkipped)
	assert.Equal(t, 3, result.TagsSkipped)
}

func TestRootCommand(t *testing.T) {
	cmd := rootCmd()
	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"migrate", "create-admin", "seed"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}
