package archive

type Request struct {
	Code     string `json:"code"`
	Filename string `json:"filename"`
	Language string `json:"language"`
}

type Response struct {
	ZipBase64 string `json:"zipBase64"`
}
