package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	categoryrule "github.com/finance-tracker/ledger/internal/application/usecase/category_rule"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// CategoryRuleController handles the endpoints of import categorization rules.
type CategoryRuleController struct {
	listUseCase   *categoryrule.ListCategoryRulesUseCase
	createUseCase *categoryrule.CreateCategoryRuleUseCase
	updateUseCase *categoryrule.UpdateCategoryRuleUseCase
	deleteUseCase *categoryrule.DeleteCategoryRuleUseCase
	testUseCase   *categoryrule.TestPatternUseCase
}

// NewCategoryRuleController creates a new category rule controller instance.
func NewCategoryRuleController(
	listUseCase *categoryrule.ListCategoryRulesUseCase,
	createUseCase *categoryrule.CreateCategoryRuleUseCase,
	updateUseCase *categoryrule.UpdateCategoryRuleUseCase,
	deleteUseCase *categoryrule.DeleteCategoryRuleUseCase,
	testUseCase *categoryrule.TestPatternUseCase,
) *CategoryRuleController {
	return &CategoryRuleController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		testUseCase:   testUseCase,
	}
}

// List handles GET /category-rules requests.
func (c *CategoryRuleController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), categoryrule.ListCategoryRulesInput{
		UserID:     userID,
		ActiveOnly: ctx.Query("active_only") == "true",
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryRuleListResponse(output))
}

// Create handles POST /category-rules requests.
func (c *CategoryRuleController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateCategoryRuleRequest
	if !bindJSON(ctx, &req) {
		return
	}
	categoryID, ok := parseID(ctx, "category_id", req.CategoryID)
	if !ok {
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), categoryrule.CreateCategoryRuleInput{
		UserID:     userID,
		Pattern:    req.Pattern,
		CategoryID: categoryID,
		Priority:   req.Priority,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCategoryRuleResponse(output.Rule))
}

// Update handles PATCH /category-rules/:id requests.
func (c *CategoryRuleController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	ruleID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRuleRequest
	if !bindJSON(ctx, &req) {
		return
	}
	categoryID, ok := parseOptionalID(ctx, "category_id", req.CategoryID)
	if !ok {
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), categoryrule.UpdateCategoryRuleInput{
		UserID:     userID,
		RuleID:     ruleID,
		Pattern:    req.Pattern,
		CategoryID: categoryID,
		Priority:   req.Priority,
		Active:     req.Active,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryRuleResponse(output.Rule))
}

// Delete handles DELETE /category-rules/:id requests.
func (c *CategoryRuleController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	ruleID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), categoryrule.DeleteCategoryRuleInput{
		UserID: userID,
		RuleID: ruleID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Test handles POST /category-rules/test requests.
func (c *CategoryRuleController) Test(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.TestPatternRequest
	if !bindJSON(ctx, &req) {
		return
	}

	output, err := c.testUseCase.Execute(ctx.Request.Context(), categoryrule.TestPatternInput{
		UserID:  userID,
		Pattern: req.Pattern,
		Limit:   req.Limit,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTestPatternResponse(output))
}
