package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

func TestDashboardUseCase_GetSummary(t *testing.T) {
	products, store := newProductUseCase(t, false)
	repos := store.Repos()
	ctx := context.Background()
	now := time.Now()

	_, err := products.Create(ctx, dto.CreateProductRequest{Name: "Yogur", Stock: dec("2"), ExpiryDate: now.AddDate(0, 0, 1).Format("2006-01-02")})
	require.NoError(t, err)
	_, err = products.Create(ctx, dto.CreateProductRequest{Name: "Arroz", QuantityUnit: "kg", Stock: dec("40")})
	require.NoError(t, err)
	require.NoError(t, repos.Customers.Create(ctx, &entity.Customer{ID: "c1", Name: "Ana", BalanceDue: dec("1200")}))
	require.NoError(t, repos.Bills.Create(ctx, &entity.Bill{ID: "b1", Total: dec("5000"), CreatedAt: now}))
	require.NoError(t, repos.Bills.Create(ctx, &entity.Bill{ID: "b2", Total: dec("700"), CreatedAt: now.AddDate(0, -2, 0)}))

	uc := usecase.NewDashboardUseCase(products, repos.Products, repos.Customers, repos.Bills, repos.Activities)
	sum, err := uc.GetSummary(ctx, now)
	require.NoError(t, err)

	assert.Equal(t, 2, sum.ProductCount)
	assert.Equal(t, 1, sum.CustomerCount)
	assert.True(t, sum.TodaySales.Equal(dec("5000")), sum.TodaySales.String())
	assert.True(t, sum.MonthlySales.Equal(dec("5000")), sum.MonthlySales.String())
	assert.True(t, sum.OutstandingDue.Equal(dec("1200")))
	require.Len(t, sum.LowStock, 1)
	assert.Equal(t, "Yogur", sum.LowStock[0].Name)
	require.Len(t, sum.ExpiringSoon, 1)
	assert.Len(t, sum.RecentActivities, 2)
}
