package category

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/test/ledgertest"
)

func requireCategoryCode(t *testing.T, err error, code domainerror.CategoryErrorCode) {
	t.Helper()
	var categoryErr *domainerror.CategoryError
	require.ErrorAs(t, err, &categoryErr)
	assert.Equal(t, code, categoryErr.Code)
}

func TestCreateCategory(t *testing.T) {
	h := ledgertest.New(t)
	uc := NewCreateCategoryUseCase(h.Categories)
	ctx := context.Background()

	out, err := uc.Execute(ctx, CreateCategoryInput{Name: "  Mercado ", Type: entity.CategoryTypeExpense})
	require.NoError(t, err)
	assert.Equal(t, "Mercado", out.Category.Name)
	assert.Equal(t, entity.DefaultCategoryColor, out.Category.Color)
	assert.Equal(t, entity.DefaultCategoryIcon, out.Category.Icon)
	assert.Nil(t, out.Category.SystemKey)

	tests := []struct {
		name  string
		input CreateCategoryInput
		code  domainerror.CategoryErrorCode
	}{
		{name: "duplicate name ignoring case", input: CreateCategoryInput{Name: "mercado", Type: entity.CategoryTypeExpense}, code: domainerror.ErrCodeCategoryNameExists},
		{name: "empty name", input: CreateCategoryInput{Name: " ", Type: entity.CategoryTypeExpense}, code: domainerror.ErrCodeMissingCategoryFields},
		{name: "bad color", input: CreateCategoryInput{Name: "Feira", Type: entity.CategoryTypeExpense, Color: "red"}, code: domainerror.ErrCodeInvalidColorFormat},
		{name: "bad type", input: CreateCategoryInput{Name: "Feira", Type: "transfer"}, code: domainerror.ErrCodeInvalidCategoryType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.input)
			requireCategoryCode(t, err, tt.code)
		})
	}

	_, err = uc.Execute(ctx, CreateCategoryInput{Name: "Mercado", Type: entity.CategoryTypeIncome})
	assert.NoError(t, err, "same name with another type is allowed")
}

func TestUpdateCategory(t *testing.T) {
	h := ledgertest.New(t)
	uc := NewUpdateCategoryUseCase(h.Categories)
	ctx := context.Background()

	food := h.Category(t, "Food", entity.CategoryTypeExpense)
	h.Category(t, "Rent", entity.CategoryTypeExpense)

	name := "Groceries"
	color := "#112233"
	out, err := uc.Execute(ctx, UpdateCategoryInput{CategoryID: food.ID, Name: &name, Color: &color})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", out.Category.Name)
	assert.Equal(t, "#112233", out.Category.Color)

	taken := "rent"
	_, err = uc.Execute(ctx, UpdateCategoryInput{CategoryID: food.ID, Name: &taken})
	requireCategoryCode(t, err, domainerror.ErrCodeCategoryNameExists)

	rename := "Anything"
	_, err = uc.Execute(ctx, UpdateCategoryInput{CategoryID: h.Refs.TransferOut, Name: &rename})
	requireCategoryCode(t, err, domainerror.ErrCodeSystemCategory)

	icon := "wallet"
	_, err = uc.Execute(ctx, UpdateCategoryInput{CategoryID: h.Refs.TransferOut, Icon: &icon})
	assert.NoError(t, err)

	_, err = uc.Execute(ctx, UpdateCategoryInput{CategoryID: uuid.New(), Icon: &icon})
	requireCategoryCode(t, err, domainerror.ErrCodeCategoryNotFound)
}

func TestDeleteCategory(t *testing.T) {
	h := ledgertest.New(t)
	uc := NewDeleteCategoryUseCase(h.Transactor, h.Categories)
	ctx := context.Background()

	userID := uuid.New()
	account := h.Account(t, userID, "Checking", "100")
	used := h.Category(t, "Food", entity.CategoryTypeExpense)
	unused := h.Category(t, "Travel", entity.CategoryTypeExpense)

	txn := entity.NewTransaction(userID, account.ID, used.ID, entity.TransactionTypeExpense,
		ledgertest.Dec("10"), h.Today(), h.Today(), "lunch", entity.TransactionSourceManual)
	require.NoError(t, h.Poster.Post(ctx, txn))

	_, err := uc.Execute(ctx, DeleteCategoryInput{CategoryID: used.ID})
	requireCategoryCode(t, err, domainerror.ErrCodeCategoryInUse)

	_, err = uc.Execute(ctx, DeleteCategoryInput{CategoryID: h.Refs.DebtPayment})
	requireCategoryCode(t, err, domainerror.ErrCodeSystemCategory)

	out, err := uc.Execute(ctx, DeleteCategoryInput{CategoryID: unused.ID})
	require.NoError(t, err)
	assert.True(t, out.Success)

	_, err = uc.Execute(ctx, DeleteCategoryInput{CategoryID: unused.ID})
	requireCategoryCode(t, err, domainerror.ErrCodeCategoryNotFound)

	h.RequireClosed(t)
}

func TestListCategories(t *testing.T) {
	h := ledgertest.New(t)
	uc := NewListCategoriesUseCase(h.Categories)

	h.Category(t, "Salary", entity.CategoryTypeIncome)

	income := entity.CategoryTypeIncome
	out, err := uc.Execute(context.Background(), ListCategoriesInput{CategoryType: &income})
	require.NoError(t, err)
	for _, category := range out.Categories {
		assert.Equal(t, entity.CategoryTypeIncome, category.Type)
	}
	// Three seeded income categories plus Salary.
	assert.Len(t, out.Categories, 4)

	bogus := entity.CategoryType("transfer")
	_, err = uc.Execute(context.Background(), ListCategoriesInput{CategoryType: &bogus})
	requireCategoryCode(t, err, domainerror.ErrCodeInvalidCategoryType)
}

func TestEnsureSystemCategories(t *testing.T) {
	h := ledgertest.New(t)
	uc := NewEnsureSystemCategoriesUseCase(h.Transactor, h.Categories)
	ctx := context.Background()

	out, err := uc.Execute(ctx, EnsureSystemCategoriesInput{})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Created)
	assert.Equal(t, h.Refs, out.Refs)

	custom := h.Category(t, "Cartões", entity.CategoryTypeExpense)
	var overrides entity.CategoryRefs
	overrides.Set(entity.SystemKeyCreditCardPayment, custom.ID)

	out, err = uc.Execute(ctx, EnsureSystemCategoriesInput{Overrides: overrides})
	require.NoError(t, err)
	assert.Equal(t, custom.ID, out.Refs.CreditCardPayment)
	assert.Equal(t, h.Refs.TransferOut, out.Refs.TransferOut)

	var wrongType entity.CategoryRefs
	wrongType.Set(entity.SystemKeyInvestmentIncome, custom.ID)
	_, err = uc.Execute(ctx, EnsureSystemCategoriesInput{Overrides: wrongType})
	requireCategoryCode(t, err, domainerror.ErrCodeInvalidCategoryType)
}

func TestEnsureSystemCategories_SeedsEmptyDatabase(t *testing.T) {
	h := ledgertest.New(t)
	ctx := context.Background()

	require.NoError(t, h.DB.Exec("DELETE FROM categories").Error)

	uc := NewEnsureSystemCategoriesUseCase(h.Transactor, h.Categories)
	out, err := uc.Execute(ctx, EnsureSystemCategoriesInput{})
	require.NoError(t, err)
	assert.Equal(t, len(entity.SystemCategories), out.Created)

	for _, sc := range entity.SystemCategories {
		assert.NotEqual(t, uuid.Nil, out.Refs.Get(sc.Key), sc.Key)
	}
}
