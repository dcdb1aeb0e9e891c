package evaluation

import (
	"encoding/json"
	"fmt"
)

const promptTemplate = `
あなたはシステムアーキテクトの専門家です。
以下のJSONデータは、ユーザーが設計したシステムアーキテクチャ図の構造です。
この構成を「スケーラビリティ」「可用性」「整合性」の観点で評価してください。

JSONデータ:
%s

以下のJSONフォーマットのみで回答してください（Markdown記法は不要です）:
{
  "score": 0〜100の整数,
  "feedback": "評価コメント（日本語）",
  "improvement": "具体的な改善案（日本語）"
}
`

// BuildPrompt embeds the diagram payload into the evaluation instructions.
func BuildPrompt(diagram json.RawMessage) (string, error) {
	compact, err := json.Marshal(diagram)
	if err != nil {
		return "", fmt.Errorf("encode diagram payload: %w", err)
	}
	return fmt.Sprintf(promptTemplate, compact), nil
}
