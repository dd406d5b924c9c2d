package services

// Agent names used in the step log.
const (
	AgentIngestor      = "Ingestor Agent"
	AgentExtractor     = "Extractor Agent"
	AgentEntityService = "LLM Service"
	AgentClassifier    = "Classifier Agent"
	AgentRouter        = "Router Agent"
	AgentOrchestrator  = "Orchestrator"
)
