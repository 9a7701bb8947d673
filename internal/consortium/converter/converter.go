// Package converter maps catalog CSV rows onto domain records. Values
// arrive locale-formatted (dd/mm/yyyy dates, comma decimals, "Sim"/"Não"
// markers); malformed cells degrade to neutral values instead of aborting
// the ingestion batch.
package converter

import (
	"strings"

	"github.com/go-gota/gota/dataframe"

	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/types"
	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/utils"
)

func DfRowToGroup(df dataframe.DataFrame, rowIdx int) types.Group {
	creditMin, creditMax := utils.ParseCreditRange(utils.GetStr("Faixa de Crédito", rowIdx, &df))

	return types.Group{
		Number:             utils.GetStr("Grupo", rowIdx, &df),
		Species:            types.Species(utils.GetStr("Espécie", rowIdx, &df)),
		Vacancies:          utils.ParseCount(utils.GetStr("Vagas", rowIdx, &df)),
		CreditMin:          creditMin,
		CreditMax:          creditMax,
		MaxTermMonths:      utils.ParseCount(utils.GetStr("Prazo de Venda", rowIdx, &df)),
		NextAssembly:       utils.ParseDate(utils.GetStr("Próxima Assembleia", rowIdx, &df)),
		AcceptsFixedBid:    utils.ParseBool(utils.GetStr("Lance Fixo", rowIdx, &df)),
		AcceptsEmbeddedBid: utils.ParseBool(utils.GetStr("Lance Embutido", rowIdx, &df)),
		Plans:              parsePlans(utils.GetStr("Planos", rowIdx, &df)),
	}
}

func DfRowToAssemblyRecord(df dataframe.DataFrame, rowIdx int) types.AssemblyRecord {
	return types.AssemblyRecord{
		GroupNumber:      utils.GetStr("Grupo", rowIdx, &df),
		Date:             utils.ParseDate(utils.GetStr("Data Assembleia", rowIdx, &df)),
		Contemplated:     utils.GetInt("Contemplados", rowIdx, &df),
		FixedBidCount:    utils.GetInt("Contemplados Lance Fixo", rowIdx, &df),
		FreeBidCount:     utils.GetInt("Contemplados Lance Livre", rowIdx, &df),
		AvgFreeBidPct:    utils.ParsePercent(utils.GetStr("Média Lance Livre (%)", rowIdx, &df)),
		LowestFreeBidPct: utils.ParsePercent(utils.GetStr("Menor Lance Livre (%)", rowIdx, &df)),
	}
}

// parsePlans reads the plan list column ("LIGHT, SUPERLIGHT"). NORMAL is
// implicit and never stored.
func parsePlans(valStr string) []types.PlanVariant {
	var plans []types.PlanVariant
	for _, part := range strings.Split(valStr, ",") {
		switch strings.ToUpper(strings.TrimSpace(part)) {
		case string(types.PlanLight):
			plans = append(plans, types.PlanLight)
		case string(types.PlanSuperLight):
			plans = append(plans, types.PlanSuperLight)
		}
	}
	return plans
}
