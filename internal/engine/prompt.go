package engine

// LLM prompt templates — data only, no logic.

// summaryPrompt produces a concise summary in the lightweight markup
// convention (# headings, **subheadings**, - bullets).
// Args: transcript.
const summaryPrompt = `Create a concise summary of this YouTube video transcript.
Focus on the main points and key takeaways.

Format your response with:
- Use # for main headings (with a space after #)
- Use ** for subheadings (like **Subheading**)
- Use bullet points (- or *) for lists and key points

Transcript:
%s`

// notesPrompt produces detailed educational notes.
// Args: transcript.
const notesPrompt = `Create detailed educational notes from this YouTube video transcript.

Please follow these formatting guidelines:
1. Use # for main sections/topics (with a space after #)
2. Use **Subheading** format for subsections
3. Elaborate on each important concept thoroughly
4. For technical terms, provide clear explanations and examples
5. Include practical applications where relevant
6. Use bullet points (- or *) for lists and key points

Make the notes comprehensive yet easy to understand for someone studying this topic.

Transcript:
%s`

// keyPointsPrompt asks for a fixed-count numbered list.
// Args: point count, transcript.
const keyPointsPrompt = `Generate exactly %d key points that summarize this YouTube video transcript.

Requirements:
1. Each point must be clear, informative, and standalone
2. Each point must be 15-20 words
3. Focus on the most important insights from the video
4. Use simple, direct language
5. Return only the %d numbered points, nothing else

Transcript:
%s`

// translatePrompt translates while preserving the markup convention.
// Args: target language, text.
const translatePrompt = `Translate the following text into %s:

%s

Note: Please preserve the formatting. If there are headings or important terms,
you can enclose them in double asterisks like **Heading**.`

// generatePrompt combines stored video notes with a user request.
// Args: notes, user prompt.
const generatePrompt = `I need you to create content based on the following YouTube video notes and the user's input.

VIDEO NOTES:
%s

USER INPUT:
%s

Please generate well-structured content that combines insights from the video with the user's request.
Format your response with:
- Use # for main headings (with a space after #)
- Use ** for subheadings (like **Subheading**)
- Use bullet points (- or *) for lists and key points
Focus on creating valuable content that addresses the user's input while incorporating key information from the video.`
