package reservation

import (
	"github.com/hyukraeyo/reservation-app-sub000/pkg/dbmetrics"
)

// Re-use the dbmetrics executor interface so the repository works both on
// a bare *sql.DB and on the instrumented wrapper
type DBExecutor = dbmetrics.DBExecutor
