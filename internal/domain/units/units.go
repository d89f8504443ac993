// Package units implementa el motor de conversión de unidades y validación de stock
// usado por facturación, descuento de inventario y órdenes de compra.
//
// Cada unidad pertenece a una familia (masa, volumen, conteo) con una unidad base
// (gm, ml, pcs). Las conversiones solo están definidas dentro de la misma familia.
// Todas las funciones son puras y seguras para uso concurrente.
package units

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/Tienda-api/internal/domain"
)

// Family familia de unidades convertibles entre sí.
type Family string

// Familias soportadas.
const (
	FamilyMass   Family = "mass"
	FamilyVolume Family = "volume"
	FamilyCount  Family = "count"
)

// Unidades base por familia.
const (
	BaseMass   = "gm"
	BaseVolume = "ml"
	BaseCount  = "pcs"
)

// Unit describe una unidad: familia y factor hacia la unidad base (cantidad × Factor = cantidad base).
// Known=false indica una unidad de texto libre resuelta por identidad.
type Unit struct {
	Name   string          `json:"name"`
	Family Family          `json:"family"`
	Factor decimal.Decimal `json:"factor"`
	Base   string          `json:"base_unit"`
	Known  bool            `json:"known"`
}

var thousand = decimal.NewFromInt(1000)

// unitTable tabla de conversión; las claves ya están normalizadas.
var unitTable = map[string]Unit{
	"kg": {Name: "kg", Family: FamilyMass, Factor: thousand, Base: BaseMass, Known: true},
	"gm": {Name: "gm", Family: FamilyMass, Factor: decimal.NewFromInt(1), Base: BaseMass, Known: true},
	"g":  {Name: "g", Family: FamilyMass, Factor: decimal.NewFromInt(1), Base: BaseMass, Known: true},

	"liters": {Name: "liters", Family: FamilyVolume, Factor: thousand, Base: BaseVolume, Known: true},
	"l":      {Name: "l", Family: FamilyVolume, Factor: thousand, Base: BaseVolume, Known: true},
	"ml":     {Name: "ml", Family: FamilyVolume, Factor: decimal.NewFromInt(1), Base: BaseVolume, Known: true},

	"pcs":     countUnit("pcs"),
	"piece":   countUnit("piece"),
	"pieces":  countUnit("pieces"),
	"box":     countUnit("box"),
	"boxes":   countUnit("boxes"),
	"packet":  countUnit("packet"),
	"packets": countUnit("packets"),
	"bottle":  countUnit("bottle"),
	"bottles": countUnit("bottles"),
}

func countUnit(name string) Unit {
	return Unit{Name: name, Family: FamilyCount, Factor: decimal.NewFromInt(1), Base: BaseCount, Known: true}
}

// Normalize limpia espacios y aplica case folding Unicode ("KG " -> "kg").
func Normalize(unit string) string {
	return cases.Fold().String(strings.TrimSpace(unit))
}

// Lookup busca la unidad en la tabla; ok=false si no es reconocida.
func Lookup(unit string) (Unit, bool) {
	u, ok := unitTable[Normalize(unit)]
	return u, ok
}

// Resolve devuelve la unidad de la tabla o, si no es reconocida, una unidad de conteo con factor 1.
func Resolve(unit string) Unit {
	if u, ok := Lookup(unit); ok {
		return u
	}
	return Unit{
		Name:   Normalize(unit),
		Family: FamilyCount,
		Factor: decimal.NewFromInt(1),
		Base:   BaseCount,
	}
}

// Compatible indica si dos unidades pertenecen a la misma familia.
// Las unidades no reconocidas cuentan como conteo.
func Compatible(a, b string) bool {
	return Resolve(a).Family == Resolve(b).Family
}

// ValidateUnit retorna ErrUnrecognizedUnit si la unidad no está en la tabla (modo estricto).
func ValidateUnit(unit string) error {
	if _, ok := Lookup(unit); !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnrecognizedUnit, strings.TrimSpace(unit))
	}
	return nil
}

// Units lista las unidades reconocidas ordenadas por familia y nombre.
func Units() []Unit {
	list := make([]Unit, 0, len(unitTable))
	for _, u := range unitTable {
		list = append(list, u)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Family != list[j].Family {
			return list[i].Family < list[j].Family
		}
		return list[i].Name < list[j].Name
	})
	return list
}
