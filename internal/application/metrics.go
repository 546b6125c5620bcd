package application

import "expvar"

// Counters exported on /debug/vars.
var (
	metricRegistrations = expvar.NewInt("users_registrations_total")
	metricLoginOK       = expvar.NewInt("users_logins_ok_total")
	metricLoginFailed   = expvar.NewInt("users_logins_failed_total")
	metricUsersCreated  = expvar.NewInt("users_created_total")
	metricUsersDeleted  = expvar.NewInt("users_deleted_total")
)
