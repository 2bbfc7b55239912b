package api

type feelingInput struct {
	Feeling string `json:"feeling" form:"feeling"`
}

type draftInput struct {
	PhotoDataURL string `json:"photoDataUrl" form:"photoDataUrl"`
	PhotoType    string `json:"photoType" form:"photoType"`
	Timestamp    int64  `json:"timestamp" form:"timestamp"`
}
