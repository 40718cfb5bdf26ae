// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package waitlist

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SiikHub/SiikHubWaitList/models"
)

func TestExport_JSON(t *testing.T) {
	reg, _, clock := newTestRegistry(t)
	ctx := context.Background()

	register(t, reg, "a@x.com")
	clock.Advance(time.Second)
	register(t, reg, "b@x.com")
	_, err := reg.Unsubscribe(ctx, "a@x.com")
	require.NoError(t, err)

	res, err := reg.Export(ctx, "", true)
	require.NoError(t, err)
	assert.Equal(t, models.FormatJSON, res.Format)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "b@x.com", res.Rows[0].Email)
	assert.Equal(t, res.Rows, res.Data())

	all, err := reg.Export(ctx, models.FormatJSON, false)
	require.NoError(t, err)
	assert.Len(t, all.Rows, 2)
}

func TestExport_CSV(t *testing.T) {
	reg, _, clock := newTestRegistry(t)
	ctx := context.Background()

	register(t, reg, "a@x.com")
	clock.Advance(time.Second)
	_, err := reg.Register(ctx, "b@x.com", "has,comma", models.ClientInfo{})
	require.NoError(t, err)

	res, err := reg.Export(ctx, models.FormatCSV, true)
	require.NoError(t, err)
	assert.Equal(t, res.CSV, res.Data())

	rows, err := csv.NewReader(strings.NewReader(res.CSV)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "a@x.com", rows[1][0])
	assert.Equal(t, "1", rows[1][3])
	assert.Equal(t, "true", rows[1][4])
	assert.Equal(t, "has,comma", rows[2][1])
}

func TestExport_UnknownFormat(t *testing.T) {
	reg, _, _ := newTestRegistry(t)

	_, err := reg.Export(context.Background(), "xml", true)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
