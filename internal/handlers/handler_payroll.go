package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/dto"
	"github.com/SscSPs/pos_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type payrollHandler struct {
	payrollService portssvc.PayrollSvcFacade
}

func registerEmployeeRoutes(rg *gin.RouterGroup, payrollService portssvc.PayrollSvcFacade) {
	h := &payrollHandler{payrollService: payrollService}

	employees := rg.Group("/employees")
	{
		employees.POST("", h.createEmployee)
		employees.GET("", h.listEmployees)
		employees.POST("/:employeeID/pay", h.paySalary)
		employees.POST("/reset-pay-cycle", h.resetPayCycle)
	}
}

// createEmployee godoc
// @Summary Create an employee
// @Tags employees
// @Accept  json
// @Produce  json
// @Param   employee body dto.CreateEmployeeRequest true "Employee details"
// @Success 201 {object} domain.Employee
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create employee"
// @Security BearerAuth
// @Router /employees [post]
func (h *payrollHandler) createEmployee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEmployeeRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	employee, err := h.payrollService.CreateEmployee(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create employee")
		return
	}

	logger.Info("Employee created", slog.String("employee_id", employee.EmployeeID))
	c.JSON(http.StatusCreated, employee)
}

// listEmployees godoc
// @Summary List employees
// @Tags employees
// @Produce  json
// @Success 200 {array} domain.Employee
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list employees"
// @Security BearerAuth
// @Router /employees [get]
func (h *payrollHandler) listEmployees(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	employees, err := h.payrollService.ListEmployees(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list employees")
		return
	}
	c.JSON(http.StatusOK, employees)
}

// paySalary godoc
// @Summary Pay an employee's salary
// @Description Marks the employee paid for the current cycle and posts the salary expense
// @Tags employees
// @Accept  json
// @Produce  json
// @Param   employeeID path string true "Employee ID"
// @Param   payment body dto.PaySalaryRequest false "Payment details"
// @Success 200 {object} domain.PayrollResult
// @Failure 400 {object} map[string]string "Already paid or invalid payment method"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Employee not found"
// @Failure 503 {object} map[string]string "Persistence unavailable"
// @Failure 500 {object} map[string]string "Failed to pay salary"
// @Security BearerAuth
// @Router /employees/{employeeID}/pay [post]
func (h *payrollHandler) paySalary(c *gin.Context) {
	employeeID := c.Param("employeeID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("employee_id", employeeID))
	var req dto.PaySalaryRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	result, err := h.payrollService.PaySalary(c.Request.Context(), employeeID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to pay salary")
		return
	}

	logger.Info("Salary paid", slog.String("reference", result.Entry.Reference))
	c.JSON(http.StatusOK, result)
}

// resetPayCycle godoc
// @Summary Start a new pay cycle
// @Description Sets every paid employee back to pending
// @Tags employees
// @Produce  json
// @Success 200 {object} dto.ResetPayCycleResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to reset pay cycle"
// @Security BearerAuth
// @Router /employees/reset-pay-cycle [post]
func (h *payrollHandler) resetPayCycle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	reset, err := h.payrollService.ResetPayCycle(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to reset pay cycle")
		return
	}

	logger.Info("Pay cycle reset", slog.Int("reset", reset))
	c.JSON(http.StatusOK, dto.ResetPayCycleResponse{Reset: reset})
}

type jobHandler struct {
	jobService portssvc.JobSvcFacade
}

func registerJobRoutes(rg *gin.RouterGroup, jobService portssvc.JobSvcFacade) {
	h := &jobHandler{jobService: jobService}

	jobs := rg.Group("/jobs")
	{
		jobs.POST("", h.createJob)
		jobs.GET("", h.listJobs)
		jobs.POST("/:jobID/complete", h.completeJob)
	}
}

// createJob godoc
// @Summary Create a job order
// @Tags jobs
// @Accept  json
// @Produce  json
// @Param   job body dto.CreateJobRequest true "Job details"
// @Success 201 {object} domain.Job
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create job"
// @Security BearerAuth
// @Router /jobs [post]
func (h *jobHandler) createJob(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateJobRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	job, err := h.jobService.CreateJob(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create job")
		return
	}

	logger.Info("Job created", slog.String("job_id", job.JobID))
	c.JSON(http.StatusCreated, job)
}

// listJobs godoc
// @Summary List job orders
// @Tags jobs
// @Produce  json
// @Success 200 {array} domain.Job
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list jobs"
// @Security BearerAuth
// @Router /jobs [get]
func (h *jobHandler) listJobs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	jobs, err := h.jobService.ListJobs(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list jobs")
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// completeJob godoc
// @Summary Complete a job order
// @Description Marks the job done and pays its labour cost out of cash
// @Tags jobs
// @Accept  json
// @Produce  json
// @Param   jobID path string true "Job ID"
// @Param   completion body dto.CompleteJobRequest false "Completion details"
// @Success 200 {object} domain.JobCompletionResult
// @Failure 400 {object} map[string]string "Job already completed"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Job not found"
// @Failure 503 {object} map[string]string "Persistence unavailable"
// @Failure 500 {object} map[string]string "Failed to complete job"
// @Security BearerAuth
// @Router /jobs/{jobID}/complete [post]
func (h *jobHandler) completeJob(c *gin.Context) {
	jobID := c.Param("jobID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("job_id", jobID))
	var req dto.CompleteJobRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	result, err := h.jobService.CompleteJob(c.Request.Context(), jobID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to complete job")
		return
	}

	logger.Info("Job completed", slog.String("reference", result.Entry.Reference))
	c.JSON(http.StatusOK, result)
}

type expenseHandler struct {
	expenseService portssvc.ExpenseSvc
}

func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvc) {
	h := &expenseHandler{expenseService: expenseService}
	rg.POST("/expenses", h.recordExpense)
}

// recordExpense godoc
// @Summary Record an operating expense
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expense body dto.RecordExpenseRequest true "Expense details"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Invalid amount or unknown account"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Persistence unavailable"
// @Failure 500 {object} map[string]string "Failed to record expense"
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) recordExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordExpenseRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	entry, err := h.expenseService.RecordExpense(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to record expense")
		return
	}

	logger.Info("Expense recorded", slog.String("entry_id", entry.EntryID), slog.String("amount", req.Amount.String()))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(entry))
}
