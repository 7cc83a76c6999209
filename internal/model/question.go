package model

// Question 题库接口返回的单道题目，字段名与上游保持一致，原样透传给前端
// swagger:model
type Question struct {
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Category         string   `json:"category"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// TriviaResponseCode 上游接口的 response_code
type TriviaResponseCode int

const (
	TriviaCodeSuccess       TriviaResponseCode = 0
	TriviaCodeNoResults     TriviaResponseCode = 1
	TriviaCodeInvalidParam  TriviaResponseCode = 2
	TriviaCodeTokenNotFound TriviaResponseCode = 3
	TriviaCodeTokenEmpty    TriviaResponseCode = 4
	TriviaCodeRateLimit     TriviaResponseCode = 5
)

// TriviaResponse 上游接口响应体
type TriviaResponse struct {
	ResponseCode TriviaResponseCode `json:"response_code"`
	Results      []Question         `json:"results"`
}

// FetchResult 区分“成功但没有题目”和“拉取失败”
type FetchResult struct {
	Questions []Question
	Err       error
}

func (r FetchResult) Failed() bool {
	return r.Err != nil
}

func (r FetchResult) Empty() bool {
	return r.Err == nil && len(r.Questions) == 0
}
