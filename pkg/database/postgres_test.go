package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/jurnal-kelas-api/pkg/config"
)

func TestDSNPrefersURL(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{URL: "postgres://admin:secret@db:5432/kelas?sslmode=require", Host: "ignored"})
	assert.Equal(t, "postgres://admin:secret@db:5432/kelas?sslmode=require", dsn)
}

func TestDSNFromParts(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{Host: "localhost", Port: 5432, User: "postgres", Password: "pw", Name: "jurnal_kelas", SSLMode: "disable"})
	assert.Equal(t, "host=localhost port=5432 user=postgres password=pw dbname=jurnal_kelas sslmode=disable", dsn)
}
