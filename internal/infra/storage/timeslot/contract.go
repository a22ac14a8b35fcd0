package timeslot

import "github.com/m04kA/EquestrianHub/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
