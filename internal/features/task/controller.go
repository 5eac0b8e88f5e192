package task

import (
	"kliernav-crm/internal/common/apperr"
	"kliernav-crm/internal/common/models"
	"kliernav-crm/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type TaskController struct {
	TaskService TaskService
}

func NewTaskController(taskService TaskService) *TaskController {
	return &TaskController{TaskService: taskService}
}

type CreateTaskRequest struct {
	Title    string              `json:"title"`
	DueDate  string              `json:"dueDate"`
	LeadID   string              `json:"leadId,omitempty"`
	Priority models.TaskPriority `json:"priority,omitempty"`
}

func (ctrl *TaskController) ListTasks(c *fiber.Ctx) error {
	tasks, err := ctrl.TaskService.ListTasks(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch tasks")
	}
	return c.JSON(fiber.Map{"tasks": tasks})
}

func (ctrl *TaskController) CreateTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	task, err := ctrl.TaskService.CreateTask(c.Context(), middleware.CurrentUser(c), CreateTaskInput{
		Title:    req.Title,
		DueDate:  req.DueDate,
		LeadID:   req.LeadID,
		Priority: req.Priority,
	})
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

func (ctrl *TaskController) UpdateTask(c *fiber.Ctx) error {
	var patch TaskPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	task, err := ctrl.TaskService.UpdateTask(c.Context(), middleware.CurrentUser(c), c.Params("id"), patch)
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(task)
}

func (ctrl *TaskController) ToggleTask(c *fiber.Ctx) error {
	task, err := ctrl.TaskService.ToggleTask(c.Context(), middleware.CurrentUser(c), c.Params("id"))
	if err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.JSON(task)
}

func (ctrl *TaskController) DeleteTask(c *fiber.Ctx) error {
	if err := ctrl.TaskService.DeleteTask(c.Context(), middleware.CurrentUser(c), c.Params("id")); err != nil {
		return fiber.NewError(apperr.HTTPStatus(err), err.Error())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
