package notify_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturas-api/internal/domain/entity"
	"github.com/jhoicas/facturas-api/internal/infrastructure/notify"
	"github.com/jhoicas/facturas-api/pkg/logger"
)

func TestLogNotifier_RegistraTransicion(t *testing.T) {
	var buf bytes.Buffer
	n := notify.NewLogNotifier(logger.New(logger.Config{Level: "info", Output: &buf}))

	inv := &entity.Invoice{ID: "i1", InvoiceNumber: "INV-20240101-000000", Status: entity.InvoiceStatusApproved, TotalAmount: 22000}
	require.NoError(t, n.NotifyStatusChange(context.Background(), inv, entity.InvoiceStatusSent))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "notify", entry["component"])
	assert.Equal(t, "sent", entry["from"])
	assert.Equal(t, "approved", entry["to"])
	assert.Equal(t, true, entry["final"])
	assert.Equal(t, float64(22000), entry["total_amount"])
}
