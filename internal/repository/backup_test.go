package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/gestor/internal/model"
)

func TestExportImport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	want := sampleState()
	want.Session = nil

	data, err := Export(want)
	require.NoError(t, err)

	b, err := ParseBackup(data)
	require.NoError(t, err)

	store := NewStore(NewMemoryRepository(), nil)
	require.NoError(t, store.Restore(ctx, b))

	assert.Equal(t, want, store.Load(ctx))
}

func TestParseBackup_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `hello`},
		{name: "array document", data: `[1,2,3]`},
		{name: "products wrong shape", data: `{"products":{"id":"P1"}}`},
		{name: "sales wrong field type", data: `{"sales":[{"total":"abc"}]}`},
		{name: "config wrong shape", data: `{"config":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBackup([]byte(tt.data))
			require.ErrorIs(t, err, ErrImportParse)
		})
	}
}

func TestRestore_MissingSectionsKeepStoredSlots(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryRepository(), nil)
	require.NoError(t, store.Save(ctx, sampleState()))

	b, err := ParseBackup([]byte(`{"expenses":[],"config":{"name":"Nova","currency":"USD"},"products":null}`))
	require.NoError(t, err)
	require.NoError(t, store.Restore(ctx, b))

	got := store.Load(ctx)
	assert.Empty(t, got.Expenses)
	assert.Equal(t, "Nova", got.Config.Name)
	assert.Equal(t, "USD", got.Config.Currency)
	assert.Len(t, got.Products, 2)
	assert.Len(t, got.Sales, 2)
	assert.Equal(t, model.SaleStatusRefunded, got.Sales[1].Status)
}
