package apierrors

const (
	MsgFailListTask       = "errorListTask"
	MsgInvalidTaskID      = "invalidTaskID"
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgTaskNotFound       = "taskNotFound"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTask     = "failDeleteTask"
	MsgInvalidStatus      = "invalidStatus"
	MsgUnauthorized       = "unauthorized"
	MsgForbidden          = "forbidden"
	MsgInvalidCredentials = "invalidCredentials"
	MsgUsernameTaken      = "usernameTaken"
	MsgFailRegister       = "failRegister"
	MsgInvalidWebhook     = "invalidWebhook"
	MsgLinkTokenMismatch  = "linkTokenMismatch"
	MsgNotifyUnconfigured = "notifyUnconfigured"
	MsgFailNotify         = "failNotify"
	MsgFailAutocomplete   = "failAutocomplete"
)
