package units_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/units"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tabla y normalización
// ──────────────────────────────────────────────────────────────────────────────

func TestLookup_NormalizaMayusculasYEspacios(t *testing.T) {
	u, ok := units.Lookup("  KG ")
	require.True(t, ok)
	assert.Equal(t, "kg", u.Name)
	assert.Equal(t, units.FamilyMass, u.Family)
	assert.Equal(t, units.BaseMass, u.Base)

	_, ok = units.Lookup("Liters")
	assert.True(t, ok)
}

func TestLookup_UnidadDesconocida(t *testing.T) {
	_, ok := units.Lookup("dozen")
	assert.False(t, ok)

	u := units.Resolve("Dozen")
	assert.Equal(t, units.FamilyCount, u.Family)
	assert.True(t, u.Factor.Equal(decimal.NewFromInt(1)))
	assert.False(t, u.Known)
}

func TestFamilias(t *testing.T) {
	cases := map[string]units.Family{
		"kg": units.FamilyMass, "gm": units.FamilyMass, "g": units.FamilyMass,
		"liters": units.FamilyVolume, "l": units.FamilyVolume, "ml": units.FamilyVolume,
		"pcs": units.FamilyCount, "piece": units.FamilyCount, "pieces": units.FamilyCount,
		"box": units.FamilyCount, "boxes": units.FamilyCount, "packet": units.FamilyCount,
		"packets": units.FamilyCount, "bottle": units.FamilyCount, "bottles": units.FamilyCount,
	}
	for name, fam := range cases {
		u, ok := units.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, fam, u.Family, name)
	}
	assert.Len(t, units.Units(), len(cases))
}

func TestCompatible(t *testing.T) {
	assert.True(t, units.Compatible("kg", "gm"))
	assert.True(t, units.Compatible("l", "ml"))
	assert.True(t, units.Compatible("box", "pcs"))
	assert.True(t, units.Compatible("dozen", "pcs"), "desconocida se trata como conteo")
	assert.False(t, units.Compatible("kg", "pcs"))
	assert.False(t, units.Compatible("ml", "gm"))
}

func TestValidateUnit(t *testing.T) {
	assert.NoError(t, units.ValidateUnit("Kg"))
	err := units.ValidateUnit("dozen")
	assert.ErrorIs(t, err, domain.ErrUnrecognizedUnit)
}

// ──────────────────────────────────────────────────────────────────────────────
// Conversión
// ──────────────────────────────────────────────────────────────────────────────

func TestConvertToBaseUnit(t *testing.T) {
	assert.True(t, units.ConvertToBaseUnit(d("1"), "kg").Equal(d("1000")))
	assert.True(t, units.ConvertToBaseUnit(d("1000"), "gm").Equal(d("1000")))
	assert.True(t, units.ConvertToBaseUnit(d("1.5"), "liters").Equal(d("1500")))
	assert.True(t, units.ConvertToBaseUnit(d("3"), "boxes").Equal(d("3")))
}

func TestConvertToBaseUnit_DesconocidaEsIdentidad(t *testing.T) {
	assert.True(t, units.ConvertToBaseUnit(d("5"), "dozen").Equal(d("5")))
	assert.True(t, units.ConvertFromBaseUnit(d("5"), "dozen").Equal(d("5")))
}

func TestRoundTrip(t *testing.T) {
	tolerance := d("0.000000001")
	quantities := []string{"0", "1", "0.001", "2.5", "10.0001", "1234.5678", "999999"}
	for _, u := range units.Units() {
		for _, q := range quantities {
			back := units.ConvertFromBaseUnit(units.ConvertToBaseUnit(d(q), u.Name), u.Name)
			assert.True(t, back.Sub(d(q)).Abs().LessThanOrEqual(tolerance), "%s %s -> %s", q, u.Name, back)
		}
	}
}

func TestConvert(t *testing.T) {
	got, ok := units.Convert(d("1500"), "gm", "kg")
	require.True(t, ok)
	assert.True(t, got.Equal(d("1.5")))

	_, ok = units.Convert(d("1"), "kg", "ml")
	assert.False(t, ok)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "2 kg", units.Format(d("2"), "kg"))
	assert.Equal(t, "1.5 kg", units.Format(d("1.500"), " kg"))
	assert.Equal(t, "0.3333 kg", units.Format(d("1").Div(d("3")), "kg"))
}
