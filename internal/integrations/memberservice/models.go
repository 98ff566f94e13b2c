package memberservice

// Member модель участника из MemberService
type Member struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	ProfilePic   *string `json:"profilePic"`
	MobileNumber *string `json:"mobileNumber"`
	ChapterName  *string `json:"chapterName"`
}

// ErrorResponse модель ошибки от MemberService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
