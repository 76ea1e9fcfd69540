package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"easyshop/internal/models/request_models"
	"easyshop/internal/services"
	"easyshop/pkg/utils"
)

type BankAccountController struct {
	bankAccountService services.BankAccountService
}

func NewBankAccountController(bankAccountService services.BankAccountService) *BankAccountController {
	return &BankAccountController{
		bankAccountService: bankAccountService,
	}
}

// ListAccounts godoc
// @Summary List a customer's linked bank accounts
// @Tags BankAccounts
// @Produce json
// @Param customerId path string true "Customer ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /customers/{customerId}/accounts [get]
func (b *BankAccountController) ListAccounts(c *gin.Context) {
	accounts, err := b.bankAccountService.ListAccounts(
		c.Request.Context(), c.GetString("user_id"), c.GetString("role"), c.Param("customerId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, accounts, "Accounts fetched successfully")
}

// AddAccount godoc
// @Summary Link a bank account for mandate debits
// @Description Verifies BVN ownership with the provider before linking
// @Tags BankAccounts
// @Accept json
// @Produce json
// @Param customerId path string true "Customer ID"
// @Param request body request_models.AddBankAccountRequest true "Bank account payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /customers/{customerId}/accounts [post]
func (b *BankAccountController) AddAccount(c *gin.Context) {
	var req request_models.AddBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	account, err := b.bankAccountService.AddAccount(
		c.Request.Context(), c.GetString("user_id"), c.GetString("role"), c.Param("customerId"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, account, "Bank account linked successfully")
}

// UpdatePriority godoc
// @Summary Change the failover priority of a linked account
// @Tags BankAccounts
// @Accept json
// @Produce json
// @Param customerId path string true "Customer ID"
// @Param accountId path string true "Account ID"
// @Param request body request_models.UpdateAccountPriorityRequest true "Priority payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /customers/{customerId}/accounts/{accountId} [put]
func (b *BankAccountController) UpdatePriority(c *gin.Context) {
	var req request_models.UpdateAccountPriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	err := b.bankAccountService.UpdatePriority(
		c.Request.Context(), c.GetString("user_id"), c.GetString("role"),
		c.Param("customerId"), c.Param("accountId"), req.Priority)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Account priority updated successfully")
}

// DeleteAccount godoc
// @Summary Unlink a bank account
// @Description Refuses to unlink an account still backing a live mandate
// @Tags BankAccounts
// @Produce json
// @Param customerId path string true "Customer ID"
// @Param accountId path string true "Account ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /customers/{customerId}/accounts/{accountId} [delete]
func (b *BankAccountController) DeleteAccount(c *gin.Context) {
	err := b.bankAccountService.DeleteAccount(
		c.Request.Context(), c.GetString("user_id"), c.GetString("role"),
		c.Param("customerId"), c.Param("accountId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Bank account removed successfully")
}

// ListBanks godoc
// @Summary List supported banks
// @Tags BankAccounts
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /banks [get]
func (b *BankAccountController) ListBanks(c *gin.Context) {
	banks, err := b.bankAccountService.ListBanks(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, banks, "Banks fetched successfully")
}
