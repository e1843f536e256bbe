package model

// BuildIn запрос на сборку пакета
type BuildIn struct {
	Course      Course `json:"course"`
	Strategy    string `json:"strategy"`
	Assessments *bool  `json:"assessments,omitempty"`
	Publish     *bool  `json:"publish,omitempty"`
}

// BuildOut собранный пакет
type BuildOut struct {
	FileName  string `json:"file_name"`
	Archive   []byte `json:"-"`
	Manifest  string `json:"manifest"`
	Resources int    `json:"resources"`
	ObjectKey string `json:"object_key,omitempty"`
	ObjectURL string `json:"object_url,omitempty"`
}

type AliveOut struct {
	Config   interface{} `json:"config"`
	Strategy string      `json:"strategy"`
	Version  string      `json:"version"`
}

type Pong struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Status  string `json:"status"`
	Port    int    `json:"port"`
	Pid     string `json:"pid"`
	Run     string `json:"run"`
}

type RestStatus struct {
	Description string `json:"description"`
	Status      int    `json:"status"`
	Code        string `json:"code"`
	Error       string `json:"error"`
}

type Response struct {
	Data   interface{} `json:"data"`
	Status RestStatus  `json:"status"`
}
