package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pariney/saree-storefront/pkg/db/dbtest"
	"github.com/pariney/saree-storefront/pkg/enums"
	pkgerrors "github.com/pariney/saree-storefront/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func intPtr(v int) *int { return &v }

func setup(t *testing.T) (Service, *gorm.DB, uuid.UUID) {
	t.Helper()
	conn := dbtest.Open(t)
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	user := dbtest.CreateUser(t, conn, "asha@example.com", enums.ProfileRoleUser)
	return svc, conn, user.ID
}

func TestAddMergesDuplicateProduct(t *testing.T) {
	svc, conn, userID := setup(t)
	ctx := context.Background()
	product := dbtest.CreateProduct(t, conn, "Kanjivaram Silk", 15999)

	item, created, err := svc.Add(ctx, userID, AddItemInput{ProductID: product.ID})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 1, item.Quantity)
	require.NotNil(t, item.Product, "new lines carry the joined product")
	assert.Equal(t, "Kanjivaram Silk", item.Product.Name)

	item, created, err = svc.Add(ctx, userID, AddItemInput{ProductID: product.ID})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 2, item.Quantity)
	require.NotNil(t, item.Product)

	lines, err := svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	require.NotNil(t, lines[0].Product)
	assert.Equal(t, "Kanjivaram Silk", lines[0].Product.Name)
}

func TestAddHonoursExplicitQuantity(t *testing.T) {
	svc, conn, userID := setup(t)
	product := dbtest.CreateProduct(t, conn, "Chanderi Cotton", 2499)

	item, _, err := svc.Add(context.Background(), userID, AddItemInput{ProductID: product.ID, Quantity: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)

	_, _, err = svc.Add(context.Background(), userID, AddItemInput{ProductID: product.ID, Quantity: intPtr(0)})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestSetQuantityZeroOrNegativeRemovesLine(t *testing.T) {
	for _, qty := range []int{0, -5} {
		svc, conn, userID := setup(t)
		ctx := context.Background()
		product := dbtest.CreateProduct(t, conn, "Paithani", 8999)
		_, _, err := svc.Add(ctx, userID, AddItemInput{ProductID: product.ID})
		require.NoError(t, err)

		item, err := svc.SetQuantity(ctx, userID, SetQuantityInput{ProductID: product.ID, Quantity: intPtr(qty)})
		require.NoError(t, err)
		assert.Nil(t, item)

		lines, err := svc.List(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, lines, "quantity %d", qty)
	}
}

func TestSetQuantityUpdatesAndReportsMissingLine(t *testing.T) {
	svc, conn, userID := setup(t)
	ctx := context.Background()
	product := dbtest.CreateProduct(t, conn, "Bandhani", 3499)

	_, err := svc.SetQuantity(ctx, userID, SetQuantityInput{ProductID: product.ID, Quantity: intPtr(4)})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.Equal(t, "Cart item not found", pkgerrors.As(err).PublicMessage())

	_, _, err = svc.Add(ctx, userID, AddItemInput{ProductID: product.ID})
	require.NoError(t, err)
	item, err := svc.SetQuantity(ctx, userID, SetQuantityInput{ProductID: product.ID, Quantity: intPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, 4, item.Quantity)
	require.NotNil(t, item.Product)
	assert.Equal(t, int64(3499), item.Product.Price)
}

func TestAddUnknownProductIsRejectedByStore(t *testing.T) {
	svc, _, userID := setup(t)

	_, _, err := svc.Add(context.Background(), userID, AddItemInput{ProductID: 999999})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStore))
	assert.Contains(t, pkgerrors.As(err).PublicMessage(), "FOREIGN KEY")

	lines, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestCartIsScopedToOwner(t *testing.T) {
	svc, conn, userID := setup(t)
	ctx := context.Background()
	other := dbtest.CreateUser(t, conn, "ravi@example.com", enums.ProfileRoleUser)
	product := dbtest.CreateProduct(t, conn, "Organza", 5999)

	_, _, err := svc.Add(ctx, other.ID, AddItemInput{ProductID: product.ID})
	require.NoError(t, err)

	lines, err := svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	require.NoError(t, svc.Remove(ctx, userID, product.ID))
	lines, err = svc.List(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestCartStoreFailurePassesThrough(t *testing.T) {
	svc, conn, userID := setup(t)
	dbtest.Drop(t, conn, "cart_items")

	_, err := svc.List(context.Background(), userID)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStore))
	assert.Contains(t, pkgerrors.As(err).PublicMessage(), "no such table")
}
