package model

// Session is one row of the course offering table. Every field is kept as
// the raw text the portal printed; typing happens when sections are built.
type Session struct {
	Number          string `csv:"No."`
	FullCode        string `csv:"Course"`
	CourseName      string `csv:"Course Name"`
	Credits         string `csv:"Credits"`
	Instructor      string `csv:"Instructor"`
	Room            string `csv:"Room"`
	Days            string `csv:"Days"`
	StartTime       string `csv:"Start Time"`
	EndTime         string `csv:"End Time"`
	MaxEnrollment   string `csv:"Max Enrollment"`
	TotalEnrollment string `csv:"Total Enrollment"`
}
