package run

type Request struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

type Response struct {
	Output string  `json:"output"`
	Error  *string `json:"error"`
}
