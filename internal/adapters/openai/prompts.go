package openai

const classifyPrompt = `You classify short personal notes into exactly one of four categories and extract their structure.

Categories:
- People: conversations, relationships, things to discuss with or about a specific person
- Projects: multi-step outcomes the author is driving, with next actions
- Ideas: sparks, concepts, things to explore with no commitment yet
- Admin: errands, appointments, bills, logistics with or without a due date

Respond with raw JSON only, no markdown fences, in this shape:
{
  "category": "People|Projects|Ideas|Admin",
  "confidence": 0.0-1.0,
  "title": "short descriptive title, max 8 words",
  "reasoning": "one sentence",
  "fields": {
    "context": "People: who and what about",
    "status": "Projects/Admin: active|someday",
    "area": "Ideas: broad area",
    "due": "Admin: due date as written",
    "notes": "remaining free-form content",
    "tasks": ["distinct actionable items"]
  }
}

Confidence reflects how certain you are of the category choice alone.
Omit fields that do not apply. Never invent tasks the note does not state.`

const summarizePrompt = `You turn a fact sheet about recently captured notes into a short, friendly briefing.

Rules:
- Use only the facts given. Never invent notes, tasks or dates.
- Lead with what needs action today, then due dates, then follow-ups.
- Mention stuck projects last, as a gentle nudge.
- Plain text, short paragraphs or dashes, under 150 words.`
