package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestHasCurrency(t *testing.T) {
	t.Parallel()

	assert.True(t, HasCurrency("usdjpy", "JPY"))
	assert.True(t, HasCurrency("USD_JPY", "jpy"))
	assert.True(t, HasCurrency("NZDCAD", "AUD", "NZD"))
	assert.False(t, HasCurrency("EURUSD", "JPY"))
	assert.False(t, HasCurrency("", "AUD", "NZD"))
	assert.Equal(t, "XAUUSD", NormalizeInstrument("  xauusd "))
}

func TestParseSession(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Session
	}{
		{"Tokyo", Tokyo},
		{"sydney", Sydney},
		{"LONDON", London},
		{"New York", NewYork},
		{"new  york", NewYork},
		{"ny", NewYork},
		{"Autre", OtherSession},
		{"other", OtherSession},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSession(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}

	_, err := ParseSession("Frankfurt")
	assert.Error(t, err)
	assert.False(t, Session("Frankfurt").Valid())
}

func TestParseDirectionAndTimeframe(t *testing.T) {
	t.Parallel()

	d, err := ParseDirection("long")
	require.NoError(t, err)
	assert.Equal(t, Buy, d)

	d, err = ParseDirection("SELL")
	require.NoError(t, err)
	assert.Equal(t, Sell, d)

	_, err = ParseDirection("flat")
	assert.Error(t, err)

	tf, err := ParseTimeframe("m15")
	require.NoError(t, err)
	assert.Equal(t, M15, tf)

	_, err = ParseTimeframe("D")
	assert.Error(t, err)
}

func TestEnumsFromYAML(t *testing.T) {
	t.Parallel()

	var v struct {
		Session   Session   `yaml:"session"`
		Direction Direction `yaml:"direction"`
		Timeframe Timeframe `yaml:"timeframe"`
	}
	err := yaml.Unmarshal([]byte("session: new york\ndirection: sell\ntimeframe: h1\n"), &v)
	require.NoError(t, err)
	assert.Equal(t, NewYork, v.Session)
	assert.Equal(t, Sell, v.Direction)
	assert.Equal(t, H1, v.Timeframe)

	err = yaml.Unmarshal([]byte("session: mars\n"), &v)
	assert.Error(t, err)
}
