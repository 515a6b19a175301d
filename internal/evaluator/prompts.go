package evaluator

// Judge prompt definitions for the rated metrics. Each metric asks the judge
// for an integer rating between 1 and 5 stars and a short reason, returned as
// a JSON object so the response can be schema-validated.

const judgeOutputInstruction = `Respond with a JSON object of the form ` +
	`{"score": <integer 1-5>, "reason": "<one sentence>"} and nothing else.`

const groundednessSystemPrompt = `You are an AI assistant that grades how well an answer ` +
	`follows from the provided context. You will be given a CONTEXT and an ANSWER. ` +
	`Rate the groundedness of the answer using a 5-star scale: ` +
	`5 means every claim in the answer is directly supported by the context; ` +
	`3 means the answer is partially supported with some unsupported claims; ` +
	`1 means the answer is unrelated to or contradicts the context. ` +
	`Independent of factual correctness, judge only whether the context supports the answer. ` +
	judgeOutputInstruction

const relevanceSystemPrompt = `You are an AI assistant that grades how relevant an answer ` +
	`is to its question given a context. You will be given a CONTEXT, a QUESTION and an ANSWER. ` +
	`Rate the relevance using a 5-star scale: ` +
	`5 means the answer completely addresses the question with information from the context; ` +
	`3 means the answer partially addresses the question; ` +
	`1 means the answer is off-topic or does not address the question at all. ` +
	judgeOutputInstruction

const coherenceSystemPrompt = `You are an AI assistant that grades the coherence of an answer. ` +
	`You will be given a QUESTION and an ANSWER. ` +
	`Coherence is how naturally the answer reads as a whole: sentences fit together, ` +
	`flow logically, and form an organized response to the question. ` +
	`Rate coherence using a 5-star scale where 5 is perfectly coherent and 1 is incoherent. ` +
	judgeOutputInstruction

const fluencySystemPrompt = `You are an AI assistant that grades the fluency of an answer. ` +
	`You will be given a QUESTION and an ANSWER. ` +
	`Fluency is the quality of the language alone: grammar, word choice, and sentence structure, ` +
	`regardless of whether the answer is correct. ` +
	`Rate fluency using a 5-star scale where 5 is flawless and 1 is unintelligible. ` +
	judgeOutputInstruction

const similaritySystemPrompt = `You are an AI assistant that grades the equivalence between ` +
	`a model-generated answer and a correct answer. You will be given a QUESTION, ` +
	`a CORRECT ANSWER and a PREDICTED ANSWER. ` +
	`Rate the similarity using a 5-star scale: ` +
	`5 means the predicted answer is fully equivalent to the correct answer; ` +
	`3 means it is mostly equivalent with minor omissions; ` +
	`1 means it is not equivalent at all. ` +
	judgeOutputInstruction

// judgeResponseSchema validates the judge's JSON output before a rating is
// accepted. Anything outside this shape is a bad judge output, not a score.
const judgeResponseSchema = `{
  "type": "object",
  "properties": {
    "score": {"type": "integer", "minimum": 1, "maximum": 5},
    "reason": {"type": "string"}
  },
  "required": ["score"],
  "additionalProperties": false
}`
