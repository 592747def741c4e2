package usecase

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"webond/pkg/errors"
)

// AssistUseCase implements the rule-based assistant demos. Each
// operation is deterministic keyword matching, evaluated in order with
// the first matching rule winning.
type AssistUseCase struct{}

func NewAssistUseCase() *AssistUseCase {
	return &AssistUseCase{}
}

type SolverMatch struct {
	Name           string  `json:"name"`
	MatchScore     int     `json:"match_score"`
	Bio            string  `json:"bio"`
	Rating         float64 `json:"rating"`
	CompletedTasks int     `json:"completed_tasks"`
	DistanceKm     float64 `json:"distance_km"`
	Languages      string  `json:"languages"`
}

type MatchResult struct {
	Matches []SolverMatch `json:"matches"`
	Factors string        `json:"factors"`
}

const matchingFactors = "Location proximity (30%), Rating (30%), Relevant experience (25%), Language match (15%)"

// MatchSolvers suggests the top candidate solvers for a task
// description.
func (uc *AssistUseCase) MatchSolvers(taskDescription, location string) (*MatchResult, error) {
	if strings.TrimSpace(taskDescription) == "" {
		return nil, errors.BadRequest("Task description is required", nil)
	}

	lower := strings.ToLower(taskDescription)

	if strings.Contains(lower, "visa") {
		return &MatchResult{
			Factors: matchingFactors,
			Matches: []SolverMatch{
				{Name: "David Wong", MatchScore: 95, Bio: "Experienced in visa applications with 3 years helping international students. Fluent in Cantonese, English, and Mandarin.", Rating: 4.9, CompletedTasks: 47, DistanceKm: 0.8, Languages: "Cantonese, English"},
				{Name: "Sarah Chen", MatchScore: 88, Bio: "Former immigration consultant assistant. Helped 30+ students with work visa and IANG applications.", Rating: 4.8, CompletedTasks: 32, DistanceKm: 1.2, Languages: "Cantonese, Mandarin"},
				{Name: "Michael Tam", MatchScore: 82, Bio: "Local student familiar with Immigration Department procedures. Patient and detail-oriented.", Rating: 4.7, CompletedTasks: 25, DistanceKm: 2.1, Languages: "Cantonese, English"},
			},
		}, nil
	}

	if containsAny(lower, []string{"assignment", "homework", "tutor"}) {
		return &MatchResult{
			Factors: matchingFactors,
			Matches: []SolverMatch{
				{Name: "Professor Emily Liu", MatchScore: 93, Bio: "PhD student specializing in academic tutoring. Expert in essay writing, research methodology, and exam prep.", Rating: 4.9, CompletedTasks: 56, DistanceKm: 1.0, Languages: "English, Mandarin"},
				{Name: "Kevin Zhang", MatchScore: 87, Bio: "Honors student with 4.0 GPA. Tutored 40+ students in various subjects including math, science, and business.", Rating: 4.8, CompletedTasks: 42, DistanceKm: 1.5, Languages: "English, Mandarin"},
				{Name: "Jessica Leung", MatchScore: 81, Bio: "Bilingual tutor with experience helping international students adapt to HK university style.", Rating: 4.7, CompletedTasks: 34, DistanceKm: 2.3, Languages: "Cantonese, English"},
			},
		}, nil
	}

	return &MatchResult{
		Factors: matchingFactors,
		Matches: []SolverMatch{
			{Name: "Emily Liu", MatchScore: 91, Bio: "Multilingual student helper with experience in various administrative tasks.", Rating: 4.8, CompletedTasks: 38, DistanceKm: 1.5, Languages: "English, Mandarin"},
			{Name: "Jason Lee", MatchScore: 85, Bio: "Friendly local with extensive knowledge of Hong Kong services and procedures.", Rating: 4.7, CompletedTasks: 29, DistanceKm: 2.0, Languages: "Cantonese, English"},
			{Name: "Amy Ng", MatchScore: 80, Bio: "Patient helper who enjoys assisting international students adapt to HK life.", Rating: 4.6, CompletedTasks: 22, DistanceKm: 2.8, Languages: "Cantonese, English"},
		},
	}, nil
}

const (
	RiskLevelCritical = "critical"
	RiskLevelHigh     = "high"
	RiskLevelMedium   = "medium"
	RiskLevelLow      = "low"
)

type FraudAnalysis struct {
	Risk           string   `json:"risk"`
	Message        string   `json:"message"`
	Patterns       []string `json:"patterns"`
	Recommendation string   `json:"recommendation"`
	CaseID         string   `json:"case_id,omitempty"`
}

var (
	gamblingKeywords = []string{"gambl", "casino", "bet", "poker", "lottery", "slot machine", "baccarat", "blackjack", "roulette", "赌", "博彩", "投注"}
	sexKeywords      = []string{"prostitut", "escort", "sex service", "massage service", "adult service", "companionship for money", "sugar", "性服务", "援交", "色情"}
	drugKeywords     = []string{"drug", "cocaine", "heroin", "marijuana", "weed", "cannabis", "ecstasy", "mdma", "meth", "pills", "prescription drug", "毒品", "大麻", "可卡因"}
)

// AnalyzeFraud classifies a task description against the prohibited
// content rules.
func (uc *AssistUseCase) AnalyzeFraud(taskDescription string) (*FraudAnalysis, error) {
	if strings.TrimSpace(taskDescription) == "" {
		return nil, errors.BadRequest("Task content is required", nil)
	}

	lower := strings.ToLower(taskDescription)

	var detectedIllegal []string
	if containsAny(lower, gamblingKeywords) {
		detectedIllegal = append(detectedIllegal, "Gambling-related activity")
	}
	if containsAny(lower, sexKeywords) {
		detectedIllegal = append(detectedIllegal, "Sexual services or prostitution")
	}
	if containsAny(lower, drugKeywords) {
		detectedIllegal = append(detectedIllegal, "Drug-related activity")
	}

	if len(detectedIllegal) > 0 {
		return &FraudAnalysis{
			Risk:    RiskLevelCritical,
			Message: "Critical violation detected: illegal content",
			Patterns: []string{
				"Detected: " + strings.Join(detectedIllegal, ", "),
				"This content violates Hong Kong laws and platform terms of service",
				"Prohibited activities: gambling, drug trafficking, sexual services",
				"All platform communications are monitored and recorded",
			},
			Recommendation: "Task automatically rejected and blocked. Content saved as evidence, both parties' accounts flagged for review, and the case forwarded to the platform security team. Repeat violations result in a permanent ban and legal reporting.",
			CaseID:         generateCaseID(),
		}, nil
	}

	if strings.Contains(lower, "write") && containsAny(lower, []string{"dissertation", "thesis", "essay", "paper"}) {
		return &FraudAnalysis{
			Risk:    RiskLevelHigh,
			Message: "This task may violate academic integrity policies. Academic ghostwriting is prohibited.",
			Patterns: []string{
				"Academic writing assistance beyond tutoring",
				"Potential plagiarism or contract cheating",
				"Violates university academic integrity codes",
			},
			Recommendation: "Task flagged for review. Consider offering tutoring/guidance instead of direct writing services.",
		}, nil
	}

	if strings.Contains(lower, "money") && containsAny(lower, []string{"transfer", "cash", "investment", "loan"}) {
		return &FraudAnalysis{
			Risk:    RiskLevelHigh,
			Message: "Financial transaction detected. This may be a money laundering or fraud attempt.",
			Patterns: []string{
				"Requests involving money transfers",
				"Potential financial scam",
				"High risk for both parties",
			},
			Recommendation: "Task rejected. Financial transactions outside platform are prohibited.",
		}, nil
	}

	if containsAny(lower, []string{"fake", "forged", "counterfeit"}) {
		return &FraudAnalysis{
			Risk:    RiskLevelHigh,
			Message: "Illegal document falsification detected.",
			Patterns: []string{
				"Request for fake or forged documents",
				"Criminal activity",
				"Serious legal consequences",
			},
			Recommendation: "Task rejected and reported. This violates platform terms and local laws.",
		}, nil
	}

	if strings.Contains(lower, "help") && strings.Contains(lower, "exam") {
		return &FraudAnalysis{
			Risk:    RiskLevelMedium,
			Message: "Task involves exam assistance. Needs clarification to ensure it's ethical tutoring.",
			Patterns: []string{
				"Exam-related assistance mentioned",
				"Could be legitimate tutoring or cheating",
				"Requires clarification",
			},
			Recommendation: "Request clarification: is this for exam preparation/tutoring or actual exam help during the test?",
		}, nil
	}

	if containsAny(lower, []string{"buy", "sell"}) && containsAny(lower, []string{"account", "id"}) {
		return &FraudAnalysis{
			Risk:    RiskLevelMedium,
			Message: "Possible account trading detected. This violates platform policies.",
			Patterns: []string{
				"Account or credential exchange",
				"Potential identity theft",
				"Terms of service violation",
			},
			Recommendation: "Task requires manual review. Account trading is prohibited.",
		}, nil
	}

	return &FraudAnalysis{
		Risk:    RiskLevelLow,
		Message: "No significant risk patterns detected. Task appears legitimate.",
		Patterns: []string{
			"Clear and specific task description",
			"No prohibited content detected",
			"Standard service request",
		},
		Recommendation: "Task approved. Proceed with normal workflow.",
	}, nil
}

type TaskDraft struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Improvements []string `json:"improvements"`
	Questions    []string `json:"questions"`
}

// DraftTask expands a rough task idea into a structured posting.
func (uc *AssistUseCase) DraftTask(draft string) (*TaskDraft, error) {
	if strings.TrimSpace(draft) == "" {
		return nil, errors.BadRequest("Draft task description is required", nil)
	}

	lower := strings.ToLower(draft)

	if containsAny(lower, []string{"assignment", "homework", "tutor"}) {
		return &TaskDraft{
			Title: "Academic Assignment Tutoring Assistance",
			Description: "I need help understanding and completing my academic assignment. I'm looking for someone who can guide me through the concepts and help me improve my work.\n\nWhat I need:\n" +
				"- Explanation of key concepts\n" +
				"- Guidance on approach and methodology\n" +
				"- Review and feedback on my draft work\n" +
				"- Tutoring session(s) to ensure I understand the material\n\n" +
				"Important: this is for tutoring/guidance only, not ghostwriting. I want to learn and do the work myself with proper guidance.",
			Improvements: []string{
				"Added clear structure with sections",
				"Specified this is for tutoring, not ghostwriting",
				"Made expectations explicit",
				"Added ethical disclaimer",
			},
			Questions: []string{
				"What subject/topic is this assignment about?",
				"What is your deadline?",
				"Do you prefer online or in-person tutoring?",
				"What is your budget for this help?",
			},
		}, nil
	}

	if containsAny(lower, []string{"visa", "immigration"}) {
		return &TaskDraft{
			Title: "Visa Application Support & Guidance",
			Description: "I need assistance with my Hong Kong visa application process.\n\nWhat I need help with:\n" +
				"- Understanding required documents\n" +
				"- Filling out application forms correctly\n" +
				"- Accompanying me to Immigration Department if needed\n" +
				"- Translation assistance (if applicable)\n\n" +
				"Details:\nLocation: Immigration Department, Wan Chai\nPreferred date: [Your preferred date]\nLanguage: [English/Cantonese/Mandarin]\nBudget: HKD [amount]",
			Improvements: []string{
				"Clarified the type of visa assistance needed",
				"Added location and logistics details",
				"Specified language requirements",
				"Made it clear this is guidance, not fraud",
			},
			Questions: []string{
				"What type of visa are you applying for?",
				"When is your appointment or deadline?",
				"Do you need translation services?",
				"Have you prepared any documents yet?",
			},
		}, nil
	}

	return &TaskDraft{
		Title: "General Task Assistance Required",
		Description: fmt.Sprintf("I am looking for assistance with: %s\n\nTask Details:\n", draft) +
			"Location: [Please specify]\nPreferred completion date: [Please specify]\nLanguage preference: [English/Cantonese/Mandarin]\nBudget range: HKD [amount]\n\n" +
			"What I expect:\n- [Please describe expected outcomes]\n- [Please specify any requirements]",
		Improvements: []string{
			"Structured format with clear sections",
			"Added location and timing fields",
			"Included budget discussion",
			"Made task more specific and actionable",
		},
		Questions: []string{
			"Where should this task take place?",
			"When do you need this completed by?",
			"What language do you prefer for communication?",
			"What is your budget range?",
		},
	}, nil
}

type DisputeResolution struct {
	Summary      string   `json:"summary"`
	Analysis     string   `json:"analysis"`
	Decision     string   `json:"decision"`
	Compensation []string `json:"compensation"`
	NextSteps    string   `json:"next_steps"`
}

// ResolveDispute produces a preliminary arbitration recommendation.
// Final decisions require human review.
func (uc *AssistUseCase) ResolveDispute(disputeDescription string) (*DisputeResolution, error) {
	if strings.TrimSpace(disputeDescription) == "" {
		return nil, errors.BadRequest("Dispute description is required", nil)
	}

	lower := strings.ToLower(disputeDescription)

	if containsAny(lower, []string{"late", "delay"}) {
		hasProof := containsAny(lower, []string{"proof", "traffic", "evidence"})
		if hasProof {
			return &DisputeResolution{
				Summary:  "Task completed late with provided evidence/justification",
				Analysis: "The solver was late but provided proof of circumstances beyond their control. The task was completed satisfactorily.",
				Decision: "Partial compensation for inconvenience, but no full refund since the task was completed with a valid reason for delay.",
				Compensation: []string{
					"Raiser receives 20% discount",
					"Solver receives 80% of payment",
					"Platform waives commission on this transaction",
					"No negative impact on solver's rating if first offense",
				},
				NextSteps: "Both parties to confirm agreement. If the raiser disagrees, escalate to a human arbitrator within 24 hours.",
			}, nil
		}

		return &DisputeResolution{
			Summary:  "Task completed significantly late without justification",
			Analysis: "Solver was late without valid excuse or prior notification. This violates platform punctuality standards.",
			Decision: "Partial refund to raiser due to breach of agreement.",
			Compensation: []string{
				"Raiser receives 40% refund",
				"Solver receives 60% of payment",
				"Negative rating note on solver profile",
				"Warning issued to solver",
			},
			NextSteps: "Resolution executed automatically unless the solver disputes within 24 hours.",
		}, nil
	}

	if containsAny(lower, []string{"quality", "incomplete", "not satisfied"}) {
		return &DisputeResolution{
			Summary:  "Dispute over task quality/completeness",
			Analysis: "Raiser claims the task was not completed to the expected standard. Requires review of the original task description and delivery.",
			Decision: "Review task requirements and actual delivery. Request both parties to provide evidence.",
			Compensation: []string{
				"Solver given 24 hours to revise/complete work",
				"If revision satisfactory: full payment released",
				"If revision unsatisfactory: 50/50 payment split",
				"If task clearly incomplete: 70% refund to raiser",
			},
			NextSteps: "Request detailed evidence from both parties. The solver has one opportunity to address quality concerns.",
		}, nil
	}

	if containsAny(lower, []string{"payment", "refund", "money"}) {
		return &DisputeResolution{
			Summary:  "Payment-related dispute",
			Analysis: "Disagreement over payment amount or refund request. Review transaction history and task completion status.",
			Decision: "Verify task completion against original requirements.",
			Compensation: []string{
				"If task completed as specified: full payment to solver",
				"If partially completed: pro-rated payment based on completion",
				"If not completed: full refund to raiser",
				"Platform fee adjusted proportionally",
			},
			NextSteps: "Human arbitrator to review chat logs and evidence within 48 hours.",
		}, nil
	}

	return &DisputeResolution{
		Summary:  "General dispute requiring review",
		Analysis: "The dispute requires detailed review of the task agreement, communications, and deliverables.",
		Decision: "Gather more information from both parties before making a final decision.",
		Compensation: []string{
			"Payment held in escrow pending investigation",
			"Both parties submit evidence within 24 hours",
			"Human arbitrator makes final decision",
			"Decision binding unless both parties agree otherwise",
		},
		NextSteps: "Case escalated to the human review team. Expected resolution within 48-72 hours.",
	}, nil
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

func generateCaseID() string {
	return fmt.Sprintf("WB%d%04d", time.Now().UnixMilli(), rand.Intn(10000))
}
