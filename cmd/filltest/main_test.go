package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"wall-meter/pkg/geometry"
)

func TestParseSeed(t *testing.T) {
	seed, err := parseSeed("12, 34")
	require.NoError(t, err)
	require.Equal(t, geometry.PointInt{X: 12, Y: 34}, seed)

	_, err = parseSeed("12")
	require.Error(t, err)
	_, err = parseSeed("12,y")
	require.Error(t, err)
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("180, 175, 170")
	require.NoError(t, err)
	require.Equal(t, [3]uint8{180, 175, 170}, c)

	_, err = parseColor("180,175")
	require.Error(t, err)
	_, err = parseColor("180,175,300")
	require.Error(t, err)
	_, err = parseColor("180,175,-1")
	require.Error(t, err)
	_, err = parseColor("r,g,b")
	require.Error(t, err)
}
