package config_test

import (
	"drivingschool/config"
	"testing"

	"github.com/kelseyhightower/envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	var cfg config.Config

	require.NoError(t, envconfig.Process("", &cfg))

	assert.Equal(t, 1800, cfg.Exam.DurationSeconds)
	assert.Equal(t, 35, cfg.Exam.PassMark)
	assert.Equal(t, 10, cfg.Exam.LeaderboardSize)
	assert.Equal(t, "reservation-events", cfg.Kafka.Topics.ReservationEvents)
	assert.Equal(t, "5432", cfg.DB.Postgres.Write.Port)
	assert.Equal(t, "disable", cfg.DB.Postgres.Read.SSLMode)
	assert.Equal(t, "6379", cfg.Cache.Redis.Primary.Port)
	assert.Equal(t, 300, cfg.Cache.TTL)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("DB_POSTGRES_WRITE_HOST", "db.internal")
	t.Setenv("EXAM_PASS_MARK", "40")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	var cfg config.Config

	require.NoError(t, envconfig.Process("", &cfg))

	assert.Equal(t, "db.internal", cfg.DB.Postgres.Write.Host)
	assert.Equal(t, 40, cfg.Exam.PassMark)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
}
