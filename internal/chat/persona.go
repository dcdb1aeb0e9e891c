package chat

import (
	"fmt"
	"strings"
)

const DefaultRole = "ceo"

type roleProfile struct {
	label  string
	stance string
}

var roleProfiles = map[string]roleProfile{
	"ceo": {
		label:  "非技術系CEO",
		stance: "技術用語はよく分からないが、ビジネスの夢や理想を熱く語る。専門用語が出たら分かりやすく説明を求める。",
	},
	"cto": {
		label:  "技術責任者CTO",
		stance: "品質と信頼性を重視する。障害時の挙動やデータ整合性について鋭く質問する。",
	},
	"cfo": {
		label:  "財務担当CFO",
		stance: "コストを最重視する。過剰な構成には費用対効果の説明を求める。",
	},
}

func profileFor(role string) (string, roleProfile) {
	key := strings.ToLower(strings.TrimSpace(role))
	if p, ok := roleProfiles[key]; ok {
		return key, p
	}
	return DefaultRole, roleProfiles[DefaultRole]
}

// BuildSystemPrompt frames the model as the customer for the scenario.
// Unknown scenario ids still produce a usable persona.
func BuildSystemPrompt(scenarioID string, scenario *Scenario, partnerRole string) string {
	if partnerRole == "" && scenario != nil {
		partnerRole = scenario.PartnerRole
	}
	_, p := profileFor(partnerRole)

	var b strings.Builder
	fmt.Fprintf(&b, "あなたはシステム開発を依頼している顧客（%s）です。\n", p.label)
	fmt.Fprintf(&b, "性格: %s\n\n", p.stance)

	if scenario != nil {
		fmt.Fprintf(&b, "案件: %s\n", scenario.Title)
		if scenario.Description != "" {
			fmt.Fprintf(&b, "概要: %s\n", scenario.Description)
		}
		if len(scenario.Requirements) > 0 {
			b.WriteString("あなたが持っている要件（聞かれたら少しずつ伝えること）:\n")
			for _, r := range scenario.Requirements {
				fmt.Fprintf(&b, "- %s\n", r)
			}
		}
	} else {
		fmt.Fprintf(&b, "案件ID: %s\n", scenarioID)
	}

	b.WriteString(`
ルール:
- 相手はあなたの依頼を受けたシステムアーキテクトです。
- あなたは顧客なので、具体的な技術的解決策を自分から提案してはいけません。
- 質問には顧客の立場で、日本語で2〜4文程度で答えてください。
- 役になりきり、AIであることに触れないでください。
`)
	return b.String()
}
