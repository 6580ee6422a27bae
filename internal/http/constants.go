package httpx

// CurrentPage identifiers used to highlight the active nav entry.
const (
	PageLogin           = "login"
	PageRegister        = "register"
	PageForgotPassword  = "forgot-password"
	PageDashboard       = "dashboard"
	PageAppointments    = "appointments"
	PageBookAppointment = "book-appointment"
	PageRecords         = "records"
	PageRecordForm      = "record-form"
	PageRecordView      = "record-view"
)

const appTitle = "CareBridge HMS"
