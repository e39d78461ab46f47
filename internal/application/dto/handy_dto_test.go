package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/handy-sync/internal/application/dto"
)

func TestHandyPriceList_ProductoComoStringUObjeto(t *testing.T) {
	raw := `{"id":7,"code":"Mayoreo","name":"Mayoreo","items":[
		{"product":"P1","price":10.5},
		{"product":{"code":"P2","description":"Agua"},"price":"3"},
		{"product":null,"price":1}
	]}`

	var pl dto.HandyPriceList
	require.NoError(t, json.Unmarshal([]byte(raw), &pl))
	require.Len(t, pl.Items, 3)
	assert.Equal(t, dto.HandyProductRef("P1"), pl.Items[0].Product)
	assert.Equal(t, "10.5", pl.Items[0].Price.String())
	assert.Equal(t, dto.HandyProductRef("P2"), pl.Items[1].Product)
	assert.Equal(t, dto.HandyProductRef(""), pl.Items[2].Product)
}

func TestHandyProductRef_TipoInvalido(t *testing.T) {
	var ref dto.HandyProductRef
	assert.Error(t, json.Unmarshal([]byte(`42`), &ref))
}
