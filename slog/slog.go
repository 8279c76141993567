// Package slog provides logging decorators for scraper services.
package slog
