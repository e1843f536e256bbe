package model

const (
	AssessmentTypeExam = "exam"
	AssessmentTypeQuiz = "quiz"

	DefaultPointsPossible = 10.0

	BasicDescriptorFile     = "basiclti.xml"
	AdvantageDescriptorFile = "lti_advantage.xml"
)

// Course исходное описание курса. Генератор его не изменяет.
type Course struct {
	Title       string `json:"title" yaml:"title" toml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description"`
	Category    string `json:"category,omitempty" yaml:"category,omitempty" toml:"category"`
	Modules     []Node `json:"modules" yaml:"modules" toml:"modules"`
}

// Node узел дерева курса: контейнер (есть children) или лист (есть launchUrl)
type Node struct {
	Title              string              `json:"title" yaml:"title" toml:"title"`
	Children           []Node              `json:"children,omitempty" yaml:"children,omitempty" toml:"children"`
	LaunchURL          string              `json:"launchUrl,omitempty" yaml:"launchUrl,omitempty" toml:"launchUrl"`
	AssessmentURL      string              `json:"assessmentUrl,omitempty" yaml:"assessmentUrl,omitempty" toml:"assessmentUrl"`
	AssessmentTitle    string              `json:"assessmentTitle,omitempty" yaml:"assessmentTitle,omitempty" toml:"assessmentTitle"`
	AssessmentMetadata *AssessmentMetadata `json:"assessmentMetadata,omitempty" yaml:"assessmentMetadata,omitempty" toml:"assessmentMetadata"`
}

// IsContainer узел без launchUrl считается контейнером
func (n Node) IsContainer() bool {
	return n.LaunchURL == ""
}

// HasChildren отличает `children: []` от отсутствующего ключа
func (n Node) HasChildren() bool {
	return n.Children != nil
}

func (n Node) HasAssessment() bool {
	return n.AssessmentURL != ""
}

// AssessmentMetadata параметры проверочного ресурса.
// Необязательные поля - указатели: отсутствие и нулевое значение различаются.
type AssessmentMetadata struct {
	Type         string   `json:"type,omitempty" yaml:"type,omitempty" toml:"type"`
	Points       *float64 `json:"points,omitempty" yaml:"points,omitempty" toml:"points"`
	TimeLimit    *int     `json:"timeLimit,omitempty" yaml:"timeLimit,omitempty" toml:"timeLimit"`
	Attempts     *int     `json:"attempts,omitempty" yaml:"attempts,omitempty" toml:"attempts"`
	Proctored    bool     `json:"proctored,omitempty" yaml:"proctored,omitempty" toml:"proctored"`
	PassingScore *float64 `json:"passingScore,omitempty" yaml:"passingScore,omitempty" toml:"passingScore"`
}

func (m *AssessmentMetadata) PointsOrDefault() float64 {
	if m == nil || m.Points == nil {
		return DefaultPointsPossible
	}
	return *m.Points
}

func (m *AssessmentMetadata) IsExam() bool {
	return m != nil && m.Type == AssessmentTypeExam
}

// ResourceRecord ресурс манифеста, получаемый при обходе дерева
type ResourceRecord struct {
	ID           string              `json:"id"`
	FolderName   string              `json:"folder_name"`
	LaunchURL    string              `json:"launch_url"`
	Title        string              `json:"title"`
	IsAssessment bool                `json:"is_assessment"`
	Metadata     *AssessmentMetadata `json:"metadata,omitempty"`
}

// DescriptorFile имя файла дескриптора внутри папки ресурса
func (r ResourceRecord) DescriptorFile() string {
	if r.IsAssessment {
		return AdvantageDescriptorFile
	}
	return BasicDescriptorFile
}

// Href относительный путь дескриптора, всегда через "/"
func (r ResourceRecord) Href() string {
	return r.FolderName + "/" + r.DescriptorFile()
}

func FloatPtr(v float64) *float64 { return &v }

func IntPtr(v int) *int { return &v }
