package api

import "fmt"

// Endpoint registry, relative to the configured base URL.
const (
	pathLogin      = "/api/auth/login/"
	pathInfo       = "/api/auth/info/"
	pathUsers      = "/api/auth/users/"
	pathUserCreate = "/api/auth/users/create/"
	pathDashboard  = "/api/dashboard/"
	pathTasks      = "/api/tasks/"
	pathTaskCreate = "/api/tasks/create/"
	pathHistory    = "/api/tasks/history/"
)

func pathTask(id string) string {
	return fmt.Sprintf("/api/tasks/%s/", id)
}

func pathUserUpdate(id string) string {
	return fmt.Sprintf("/api/auth/users/%s/update/", id)
}

func pathUserDelete(id string) string {
	return fmt.Sprintf("/api/auth/users/%s/delete/", id)
}
